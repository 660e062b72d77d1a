package scene

import (
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/logging"
	"github.com/hubastard/layergrove/engine/object"
	log "github.com/sirupsen/logrus"
)

// LayerRenderer draws the fixed background layers ahead of the nodes.
type LayerRenderer interface {
	RenderAll()
}

// World owns the registry of live nodes and broadcasts the frame callbacks to
// them in creation order. A World is single-threaded.
//
// Nodes deleted while a broadcast is running are skipped immediately but stay
// in the backing slice until the outermost broadcast returns. Nodes created
// during a broadcast are first visited on the next one.
type World struct {
	nodes       []*Node
	backgrounds LayerRenderer
	log         log.FieldLogger

	dispatching int
	pending     bool // deleted nodes awaiting compaction
}

// NewWorld returns an empty world. A nil logger uses logging.Default.
func NewWorld(logger log.FieldLogger) *World {
	return &World{log: logging.Or(logger)}
}

func (w *World) Log() log.FieldLogger { return w.log }

// SetBackgrounds sets the layer renderer Render draws before the nodes.
func (w *World) SetBackgrounds(r LayerRenderer) { w.backgrounds = r }

// Create builds a node, fires OnCreation and appends it to the registry.
// A nil behavior gets no-op hooks.
func (w *World) Create(name string, b Behavior) *Node {
	if b == nil {
		b = Hooks{}
	}
	n := &Node{
		Base:     object.New(kindOf(b), name),
		world:    w,
		behavior: b,
	}
	b.OnCreation(n)
	w.nodes = append(w.nodes, n)
	return n
}

// Update fires OnStart once per node, then OnUpdate, on every enabled node.
func (w *World) Update(dt float64) {
	w.broadcast(func(n *Node) {
		if !n.started {
			n.behavior.OnStart(n)
			n.started = true
			if !n.live() {
				return
			}
		}
		n.behavior.OnUpdate(n, dt)
	})
}

// Render draws the background layers, then fires OnRender on every enabled node.
func (w *World) Render() {
	if w.backgrounds != nil {
		w.backgrounds.RenderAll()
	}
	w.broadcast(func(n *Node) { n.behavior.OnRender(n) })
}

// KeyDown fires OnKeyDown on every enabled node.
func (w *World) KeyDown(k core.Key) {
	w.broadcast(func(n *Node) { n.behavior.OnKeyDown(n, k) })
}

// KeyUp fires OnKeyUp on every enabled node.
func (w *World) KeyUp(k core.Key) {
	w.broadcast(func(n *Node) { n.behavior.OnKeyUp(n, k) })
}

// HandleEvent forwards key events to KeyDown/KeyUp. It never consumes the event.
func (w *World) HandleEvent(ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok {
		if k.Down {
			w.KeyDown(k.Key)
		} else {
			w.KeyUp(k.Key)
		}
	}
	return false
}

// DeleteAll deletes every live node in creation order.
func (w *World) DeleteAll() {
	for _, n := range w.Nodes() {
		n.Delete()
	}
}

// Nodes returns a snapshot of the live nodes in creation order.
func (w *World) Nodes() []*Node {
	out := make([]*Node, 0, len(w.nodes))
	for _, n := range w.nodes {
		if !n.Deleted() {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of live nodes.
func (w *World) Len() int {
	count := 0
	for _, n := range w.nodes {
		if !n.Deleted() {
			count++
		}
	}
	return count
}

// Contains reports whether n is a live node of w.
func (w *World) Contains(n *Node) bool {
	if n == nil || n.Deleted() {
		return false
	}
	for _, c := range w.nodes {
		if c == n {
			return true
		}
	}
	return false
}

// Find returns the first live node named name, or nil.
func (w *World) Find(name string) *Node {
	for _, n := range w.nodes {
		if !n.Deleted() && n.Name() == name {
			return n
		}
	}
	return nil
}

func (n *Node) live() bool { return n.Enabled() && !n.Deleted() }

func (w *World) broadcast(fn func(*Node)) {
	w.dispatching++
	defer func() {
		w.dispatching--
		if w.dispatching == 0 && w.pending {
			w.compact()
		}
	}()
	count := len(w.nodes)
	for i := 0; i < count; i++ {
		if n := w.nodes[i]; n.live() {
			fn(n)
		}
	}
}

// remove drops n from the registry, or defers that while a broadcast runs.
func (w *World) remove(n *Node) {
	if w.dispatching > 0 {
		w.pending = true
		return
	}
	for i, c := range w.nodes {
		if c == n {
			copy(w.nodes[i:], w.nodes[i+1:])
			w.nodes[len(w.nodes)-1] = nil
			w.nodes = w.nodes[:len(w.nodes)-1]
			return
		}
	}
}

func (w *World) compact() {
	kept := w.nodes[:0]
	for _, n := range w.nodes {
		if !n.Deleted() {
			kept = append(kept, n)
		}
	}
	for i := len(kept); i < len(w.nodes); i++ {
		w.nodes[i] = nil
	}
	w.nodes = kept
	w.pending = false
}
