package sprite

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation paces a strip of frames over Duration seconds with a linear
// tween from 0 to Frames.
type Animation struct {
	Frames   int
	Duration float32
	Loop     bool

	tween *gween.Tween
	done  bool
}

func NewAnimation(frames int, duration float32, loop bool) *Animation {
	if frames <= 0 {
		panic(fmt.Sprintf("layergrove: animation with %d frames", frames))
	}
	return &Animation{
		Frames:   frames,
		Duration: duration,
		Loop:     loop,
		tween:    gween.New(0, float32(frames), duration, ease.Linear),
	}
}

// Update advances by dt seconds and returns the current frame index.
// Looping animations carry the overshoot into the next cycle.
func (a *Animation) Update(dt float64) int {
	v, finished := a.tween.Update(float32(dt))
	if finished && a.Loop && a.Duration > 0 {
		over := math.Mod(float64(a.tween.Overflow), float64(a.Duration))
		v, _ = a.tween.Set(float32(over))
		finished = false
	}
	a.done = finished
	return a.frame(v)
}

// Done reports whether a non-looping animation reached its last frame.
func (a *Animation) Done() bool { return a.done }

func (a *Animation) Reset() {
	a.tween.Reset()
	a.done = false
}

func (a *Animation) frame(v float32) int {
	f := int(v)
	if f >= a.Frames {
		f = a.Frames - 1
	}
	if f < 0 {
		f = 0
	}
	return f
}
