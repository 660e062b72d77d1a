package background

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/gfx/quad"
	"github.com/hubastard/layergrove/engine/logging"
	"github.com/hubastard/layergrove/engine/object"
	log "github.com/sirupsen/logrus"
)

// DefaultTileSize is the tile edge used when a registry is built without one.
const DefaultTileSize = 32

// Registry holds one optional Background per Layer.
type Registry struct {
	// Resolution converts baked pixel sizes into screens.
	Resolution mgl64.Vec2
	// TileSize is copied into backgrounds created by New.
	TileSize int

	r     core.Renderer
	log   log.FieldLogger
	slots [LayerCount]*Background
	stats quad.Statistics
}

// NewRegistry returns a registry with every slot empty.
func NewRegistry(r core.Renderer, logger log.FieldLogger) *Registry {
	return &Registry{
		Resolution: core.ReferenceResolution,
		TileSize:   DefaultTileSize,
		r:          r,
		log:        logging.Or(logger),
	}
}

// New returns a visible, opaque background bound to g. It claims a slot
// once generated.
func (g *Registry) New(name string) *Background {
	b := &Background{
		Base:     object.New("BackGround", name),
		Visible:  true,
		TileSize: g.TileSize,
		reg:      g,
	}
	b.log = g.log.WithField("background", b.Name())
	return b
}

// Set puts b in slot l. A displaced background keeps its GPU resources.
func (g *Registry) Set(l Layer, b *Background) {
	mustLayer(l)
	if prev := g.slots[l]; prev != nil && prev != b {
		g.log.WithFields(log.Fields{"layer": l, "previous": prev.Name(), "background": b.Name()}).
			Warn("layer slot replaced; previous background still holds its GPU resources")
	}
	g.slots[l] = b
}

func (g *Registry) Get(l Layer) *Background {
	mustLayer(l)
	return g.slots[l]
}

// Occupied lists the filled slots in draw order.
func (g *Registry) Occupied() []Layer {
	var out []Layer
	for i, b := range g.slots {
		if b != nil {
			out = append(out, Layer(i))
		}
	}
	return out
}

// RenderAll draws every occupied slot from BackGround to ForeGround.
func (g *Registry) RenderAll() {
	for _, b := range g.slots {
		if b != nil {
			b.Render()
		}
	}
}

// DeleteAll deletes every occupied slot.
func (g *Registry) DeleteAll() {
	for _, b := range g.slots {
		if b != nil {
			b.Delete()
		}
	}
}

// Stats returns draw counts since the last ResetStats.
func (g *Registry) Stats() quad.Statistics { return g.stats }

func (g *Registry) ResetStats() { g.stats = quad.Statistics{} }

func (g *Registry) release(b *Background) {
	if b.layer.Valid() && g.slots[b.layer] == b {
		g.slots[b.layer] = nil
	}
}
