package mosaic

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Canvas is the assembled mosaic: a rows x cols grid of tiles.
type Canvas struct {
	rows  int
	cols  int
	tiles []Tile
}

func NewCanvas(rows, cols int) (*Canvas, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("mosaic: canvas %dx%d must be at least 1x1", rows, cols)
	}
	return &Canvas{
		rows:  rows,
		cols:  cols,
		tiles: make([]Tile, rows*cols),
	}, nil
}

func (c *Canvas) Rows() int {
	return c.rows
}

func (c *Canvas) Columns() int {
	return c.cols
}

func (c *Canvas) SetTile(row, col int, t Tile) error {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return fmt.Errorf("mosaic: cell (%d, %d) outside %dx%d canvas", row, col, c.rows, c.cols)
	}
	c.tiles[row*c.cols+col] = t
	return nil
}

func (c *Canvas) Tile(row, col int) (Tile, error) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return nil, fmt.Errorf("mosaic: cell (%d, %d) outside %dx%d canvas", row, col, c.rows, c.cols)
	}
	t := c.tiles[row*c.cols+col]
	if t == nil {
		return nil, fmt.Errorf("mosaic: cell (%d, %d) is empty", row, col)
	}
	return t, nil
}

// Render draws the canvas into an RGBA image, scaling each tile into a
// cellWidth x cellHeight cell.
func (c *Canvas) Render(cellWidth, cellHeight int) (image.Image, error) {
	if cellWidth < 1 || cellHeight < 1 {
		return nil, fmt.Errorf("mosaic: cell size %dx%d must be at least 1x1", cellWidth, cellHeight)
	}

	out := image.NewRGBA(image.Rect(0, 0, c.cols*cellWidth, c.rows*cellHeight))
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			t := c.tiles[row*c.cols+col]
			if t == nil {
				return nil, fmt.Errorf("mosaic: cell (%d, %d) is empty", row, col)
			}
			cell := image.Rect(
				col*cellWidth,
				row*cellHeight,
				(col+1)*cellWidth,
				(row+1)*cellHeight,
			)
			draw.ApproxBiLinear.Scale(out, cell, t.Image(), t.Image().Bounds(), draw.Src, nil)
		}
	}

	return out, nil
}
