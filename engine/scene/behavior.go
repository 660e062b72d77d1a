package scene

import "github.com/hubastard/layergrove/engine/core"

// Behavior receives a node's lifecycle and per-frame callbacks. Embed Hooks to
// get no-op defaults and override only what the entity needs.
type Behavior interface {
	OnCreation(n *Node)           // inside World.Create, before registration
	OnStart(n *Node)              // first enabled Update pass
	OnUpdate(n *Node, dt float64) // every enabled Update pass
	OnRender(n *Node)             // every enabled Render pass
	OnDelete(n *Node)             // first thing Delete does
	OnEnable(n *Node)
	OnDisable(n *Node)
	OnKeyDown(n *Node, k core.Key)
	OnKeyUp(n *Node, k core.Key)
}

// Hooks implements Behavior with no-ops.
type Hooks struct{}

func (Hooks) OnCreation(*Node)          {}
func (Hooks) OnStart(*Node)             {}
func (Hooks) OnUpdate(*Node, float64)   {}
func (Hooks) OnRender(*Node)            {}
func (Hooks) OnDelete(*Node)            {}
func (Hooks) OnEnable(*Node)            {}
func (Hooks) OnDisable(*Node)           {}
func (Hooks) OnKeyDown(*Node, core.Key) {}
func (Hooks) OnKeyUp(*Node, core.Key)   {}

// kinder lets a behavior name the entity kind shown in logs.
type kinder interface{ Kind() string }

func kindOf(b Behavior) string {
	if k, ok := b.(kinder); ok {
		return k.Kind()
	}
	return "Node"
}
