package background

import (
	"fmt"
	"image"

	"github.com/hubastard/layergrove/engine/core"
	"golang.org/x/image/draw"
)

// Bake copies one tileSize×tileSize block from tileset per grid cell. Cell
// (row, col) holding index i receives tileset cell (i / tilesPerRow,
// i % tilesPerRow) at (col*tileSize, row*tileSize). Index 0 is copied like
// any other.
func Bake(grid [][]int, tileset *image.RGBA, tileSize int) (*image.RGBA, error) {
	if tileSize <= 0 {
		panic(fmt.Sprintf("layergrove: tile size %d", tileSize))
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("bake: empty grid: %w", core.ErrOutOfRange)
	}
	if tileset == nil {
		return nil, fmt.Errorf("bake: no tileset: %w", core.ErrAssetNotFound)
	}
	tb := tileset.Bounds()
	tilesPerRow := tb.Dx() / tileSize
	tileRows := tb.Dy() / tileSize
	if tilesPerRow == 0 || tileRows == 0 {
		return nil, fmt.Errorf("bake: tileset %dx%d smaller than tile %d: %w", tb.Dx(), tb.Dy(), tileSize, core.ErrOutOfRange)
	}

	cols := len(grid[0])
	dst := image.NewRGBA(image.Rect(0, 0, cols*tileSize, len(grid)*tileSize))
	for row, cells := range grid {
		if len(cells) != cols {
			return nil, fmt.Errorf("bake: row %d has %d cells, want %d: %w", row, len(cells), cols, core.ErrOutOfRange)
		}
		for col, idx := range cells {
			if idx < 0 || idx >= tilesPerRow*tileRows {
				return nil, fmt.Errorf("bake: tile %d at (%d,%d) outside %d-tile set: %w", idx, row, col, tilesPerRow*tileRows, core.ErrOutOfRange)
			}
			sx := tb.Min.X + (idx%tilesPerRow)*tileSize
			sy := tb.Min.Y + (idx/tilesPerRow)*tileSize
			sr := image.Rect(sx, sy, sx+tileSize, sy+tileSize)
			draw.Copy(dst, image.Pt(col*tileSize, row*tileSize), tileset, sr, draw.Src, nil)
		}
	}
	return dst, nil
}

// FlatGrid reshapes row-major tile data into rows of columns cells.
func FlatGrid(data []int, columns int) ([][]int, error) {
	if columns <= 0 || len(data) == 0 || len(data)%columns != 0 {
		return nil, fmt.Errorf("tile data of %d cells in %d columns: %w", len(data), columns, core.ErrOutOfRange)
	}
	grid := make([][]int, 0, len(data)/columns)
	for i := 0; i < len(data); i += columns {
		grid = append(grid, data[i:i+columns])
	}
	return grid, nil
}
