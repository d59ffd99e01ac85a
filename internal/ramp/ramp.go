// Package ramp holds the reference images used as colour gradient stops.
package ramp

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gruppe-adler/ascraster/internal/imageio"
)

// Stop is a read-only RGB swatch. Sampling wraps on both axes, so a small
// swatch tiles across an output of any size.
type Stop struct {
	width, height int
	pix           []uint8 // RGB triples, row-major
}

// NewStop copies img into a Stop. Alpha is dropped; colours are taken
// non-premultiplied.
func NewStop(img image.Image) (*Stop, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("stop image has empty bounds %v", b)
	}

	s := &Stop{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]uint8, 0, 3*b.Dx()*b.Dy()),
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			s.pix = append(s.pix, c.R, c.G, c.B)
		}
	}

	return s, nil
}

// Size returns the swatch dimensions.
func (s *Stop) Size() (width, height int) {
	return s.width, s.height
}

// RGB returns the colour at (x mod width, y mod height).
// x and y must not be negative.
func (s *Stop) RGB(x, y int) (r, g, b uint8) {
	i := 3 * (x%s.width + (y%s.height)*s.width)
	return s.pix[i], s.pix[i+1], s.pix[i+2]
}

// Ramp is an ordered list of stops, lowest value first. The order is kept
// as given.
type Ramp struct {
	stops []*Stop
}

// New builds a ramp from images sorted by ascending value.
func New(images ...image.Image) (*Ramp, error) {
	r := &Ramp{stops: make([]*Stop, 0, len(images))}

	for i, img := range images {
		s, err := NewStop(img)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		r.stops = append(r.stops, s)
	}

	return r, nil
}

// Load decodes the images at paths and builds a ramp from them in the
// given order.
func Load(paths ...string) (*Ramp, error) {
	images := make([]image.Image, len(paths))

	for i, path := range paths {
		img, err := imageio.Open(path)
		if err != nil {
			return nil, fmt.Errorf("loading stop %d: %w", i, err)
		}
		images[i] = img
	}

	return New(images...)
}

// Len returns the number of stops.
func (r *Ramp) Len() int {
	if r == nil {
		return 0
	}
	return len(r.stops)
}

// Stop returns stop i.
func (r *Ramp) Stop(i int) *Stop {
	return r.stops[i]
}
