package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gruppe-adler/ascraster/internal/grid"
)

// Float32Image is an image with a single float32 channel.
//
// Lo and Hi only affect At, which maps [Lo, Hi] onto 16 bit gray so the
// image can be previewed or encoded by the standard encoders.
type Float32Image struct {
	Pix    []float32
	Stride int
	Rect   image.Rectangle
	Lo, Hi float32
}

// NewFloat32Image returns a new Float32Image with the given bounds.
func NewFloat32Image(r image.Rectangle) *Float32Image {
	return &Float32Image{
		Pix:    make([]float32, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
		Hi:     1,
	}
}

func (p *Float32Image) ColorModel() color.Model { return color.Gray16Model }

func (p *Float32Image) Bounds() image.Rectangle { return p.Rect }

// PixOffset returns the index of the element of Pix that corresponds to
// the pixel at (x, y).
func (p *Float32Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

// FloatAt returns the raw value at (x, y).
func (p *Float32Image) FloatAt(x, y int) float32 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	return p.Pix[p.PixOffset(x, y)]
}

// SetFloat stores v at (x, y).
func (p *Float32Image) SetFloat(x, y int, v float32) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = v
}

func (p *Float32Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) || p.Hi <= p.Lo {
		return color.Gray16{}
	}

	v := (p.Pix[p.PixOffset(x, y)] - p.Lo) / (p.Hi - p.Lo)
	switch {
	case v <= 0 || v != v:
		return color.Gray16{}
	case v >= 1:
		return color.Gray16{Y: 0xffff}
	}
	return color.Gray16{Y: uint16(v * 0xffff)}
}

// Set maps the gray level of c back into [Lo, Hi].
func (p *Float32Image) Set(x, y int, c color.Color) {
	g := color.Gray16Model.Convert(c).(color.Gray16)
	p.SetFloat(x, y, p.Lo+float32(g.Y)/0xffff*(p.Hi-p.Lo))
}

// SubImage returns an image representing the portion of p visible through
// r. The returned value shares pixels with p.
func (p *Float32Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Float32Image{Lo: p.Lo, Hi: p.Hi}
	}

	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Float32Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
		Lo:     p.Lo,
		Hi:     p.Hi,
	}
}

// ToGrid copies the pixels into a new grid carrying the geo-referencing of
// ref, so float output can be written back as an ASCII grid.
func (p *Float32Image) ToGrid(ref *grid.Grid) (*grid.Grid, error) {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if w != ref.Ncols || h != ref.Nrows {
		return nil, fmt.Errorf("image is %dx%d, grid is %dx%d", w, h, ref.Ncols, ref.Nrows)
	}

	cells := make([]float32, 0, w*h)
	for y := 0; y < h; y++ {
		cells = append(cells, p.Pix[y*p.Stride:y*p.Stride+w]...)
	}

	return grid.New(w, h, ref.XllCorner, ref.YllCorner, ref.CellSize, ref.NoData, cells)
}
