package mosaic

import (
	"fmt"
	"image"

	"tessera/internal/geom"
)

// SourceImage is an input image cut into a rows x cols grid of regions, each
// reduced to its average color for tile matching.
type SourceImage struct {
	img  image.Image
	rows int
	cols int
}

func NewSourceImage(img image.Image, rows, cols int) (*SourceImage, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("mosaic: grid %dx%d must be at least 1x1", rows, cols)
	}
	bounds := img.Bounds()
	if cols > bounds.Dx() || rows > bounds.Dy() {
		return nil, fmt.Errorf(
			"mosaic: grid %dx%d exceeds image size %dx%d",
			rows, cols, bounds.Dy(), bounds.Dx(),
		)
	}
	return &SourceImage{img: img, rows: rows, cols: cols}, nil
}

func (s *SourceImage) Rows() int {
	return s.rows
}

func (s *SourceImage) Columns() int {
	return s.cols
}

// RegionColor returns the average color of the region at (row, col) as a
// 3-dimensional point of 8-bit RGB channel values.
func (s *SourceImage) RegionColor(row, col int) geom.Point {
	bounds := s.img.Bounds()
	x0 := bounds.Min.X + col*bounds.Dx()/s.cols
	x1 := bounds.Min.X + (col+1)*bounds.Dx()/s.cols
	y0 := bounds.Min.Y + row*bounds.Dy()/s.rows
	y1 := bounds.Min.Y + (row+1)*bounds.Dy()/s.rows

	return AverageColor(s.img, image.Rect(x0, y0, x1, y1))
}

// AverageColor reduces a rectangle of an image to the mean of its RGB
// channels, one point dimension per channel.
func AverageColor(img image.Image, rect image.Rectangle) geom.Point {
	rect = rect.Intersect(img.Bounds())
	var r, g, b float64
	var n float64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			r += float64(pr >> 8)
			g += float64(pg >> 8)
			b += float64(pb >> 8)
			n++
		}
	}
	if n == 0 {
		return geom.New([]float64{0, 0, 0})
	}
	return geom.New([]float64{r / n, g / n, b / n})
}
