package core

// Module is an engine-level unit attached for the whole run: a scene driver,
// a debug overlay, an audio mixer. Modules update in push order and see events
// in reverse push order.
type Module interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // return true if handled; propagation stops
}

type ModuleStack struct{ list []Module }

func (ms *ModuleStack) Push(m Module) { ms.list = append(ms.list, m) }
func (ms *ModuleStack) Pop() (Module, bool) {
	if len(ms.list) == 0 {
		return nil, false
	}
	i := len(ms.list) - 1
	m := ms.list[i]
	ms.list[i] = nil
	ms.list = ms.list[:i]
	return m, true
}

func (ms *ModuleStack) Len() int { return len(ms.list) }

func (ms *ModuleStack) ForEach(f func(Module)) {
	for _, m := range ms.list {
		f(m)
	}
}

func (ms *ModuleStack) ForEachReverse(f func(Module) bool) {
	for i := len(ms.list) - 1; i >= 0; i-- {
		if stop := f(ms.list[i]); stop {
			break
		}
	}
}
