package main

import (
	"github.com/hubastard/layergrove/engine/audio"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx/sprite"
	"github.com/hubastard/layergrove/engine/scene"
)

// Sheet rows.
const (
	rowIdle  = 0
	rowRight = 1
	rowLeft  = 2
)

// Player faces the held arrow key and plays Jump on space. Any other held key
// keeps the current row; releasing everything returns to idle.
type Player struct {
	*sprite.Sprite
	Jump *audio.Sound

	held map[core.Key]bool
}

func NewPlayer(r core.Renderer, jump *audio.Sound) *Player {
	return &Player{Sprite: sprite.New(r), Jump: jump, held: map[core.Key]bool{}}
}

func (p *Player) Kind() string { return "Player" }

func (p *Player) OnKeyDown(_ *scene.Node, k core.Key) {
	p.held[k] = true
	if k == core.KeySpace && p.Jump != nil {
		p.Jump.Play()
	}
	p.pickRow()
}

func (p *Player) OnKeyUp(_ *scene.Node, k core.Key) {
	delete(p.held, k)
	p.pickRow()
}

func (p *Player) OnDisable(*scene.Node) {
	clear(p.held)
	p.pickRow()
}

func (p *Player) pickRow() {
	row := p.Row()
	switch {
	case len(p.held) == 0:
		row = rowIdle
	case p.held[core.KeyLeft]:
		row = rowLeft
	case p.held[core.KeyRight]:
		row = rowRight
	}
	if row != p.Row() {
		p.SetRow(row)
	}
}
