package background

import "fmt"

// Layer is a fixed compositing slot. Lower ordinals draw first.
type Layer int

const (
	BackGround Layer = iota
	CloseBackGround
	PlayerLayer
	CloseForeGround
	ForeGround
)

// LayerCount is the number of slots in a Registry.
const LayerCount = 5

var layerNames = [LayerCount]string{
	"BackGround",
	"CloseBackGround",
	"PlayerLayer",
	"CloseForeGround",
	"ForeGround",
}

func (l Layer) Valid() bool { return l >= 0 && l < LayerCount }

func (l Layer) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

func mustLayer(l Layer) {
	if !l.Valid() {
		panic(fmt.Sprintf("layergrove: invalid layer %d", int(l)))
	}
}
