package colors

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("#ff0080")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{1, 0, float32(0x80) / 255, 1}, c)

	c, err = Parse("00000080")
	require.NoError(t, err)
	assert.InDelta(t, 0.502, c[3], 0.001)

	for _, bad := range []string{"", "#fff", "#gg0000"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestHexRoundTrip(t *testing.T) {
	assert.Equal(t, "#ff00ffff", Hex(Magenta))
	assert.Equal(t, "#ffffff00", Hex(mgl32.Vec4{2, 1, 1, -1}))

	c, err := Parse(Hex(Slate))
	require.NoError(t, err)
	assert.True(t, c.ApproxEqualThreshold(Slate, 0.01))
	assert.Equal(t, float32(0.5), WithAlpha(White, 0.5)[3])
}
