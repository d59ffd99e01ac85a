// Package raster turns a grid into an image, either as grayscale, as a
// colour gradient between reference images or as clamped float values.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"time"

	"github.com/gruppe-adler/ascraster/internal/grid"
	"github.com/gruppe-adler/ascraster/internal/ramp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scale maps v from [inMin, inMax] onto [outMin, outMax].
// Values below inMin return outMin, values above inMax are not clamped.
func Scale(inMin, inMax, v, outMin, outMax float64) float64 {
	if v < inMin {
		return outMin
	}
	return (v-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
}

// Range returns the value range used for all modes: zero to the largest
// cell value.
func Range(g *grid.Grid) (lo, hi float64) {
	return 0, g.Max()
}

// Rasterizer maps grid cells to pixels.
type Rasterizer struct {
	// Ramp holds the colour stops for RGB output, lowest value first.
	Ramp *ramp.Ramp

	// Workers limits how many row bands are rendered at once.
	// Zero or less uses one worker per CPU.
	Workers int
}

// rowFunc fills row y of the destination, relative to its bounds.
type rowFunc func(y int)

// Render allocates an image for mode with the grid's dimensions and fills it.
func (r *Rasterizer) Render(ctx context.Context, g *grid.Grid, mode Mode) (draw.Image, error) {
	img, err := NewImage(mode, g.Ncols, g.Nrows)
	if err != nil {
		return nil, err
	}

	if err := r.Raster(ctx, g, img); err != nil {
		return nil, err
	}

	return img, nil
}

// Raster fills dst from g. The mode follows from the type of dst:
// *image.Gray for grayscale, *image.RGBA for RGB and *Float32Image for float.
// Pixel (x, y) relative to dst's bounds shows cell (x, y).
func (r *Rasterizer) Raster(ctx context.Context, g *grid.Grid, dst draw.Image) error {
	start := time.Now()

	b := dst.Bounds()
	if b.Dx() > g.Ncols || b.Dy() > g.Nrows {
		return fmt.Errorf("destination %dx%d exceeds grid %dx%d", b.Dx(), b.Dy(), g.Ncols, g.Nrows)
	}

	lo, hi := Range(g)

	var (
		mode Mode
		row  rowFunc
	)
	switch img := dst.(type) {
	case *image.Gray:
		if hi == lo {
			return &RangeError{Min: lo, Max: hi}
		}
		mode, row = Grayscale, grayRow(img, g, lo, hi)
	case *image.RGBA:
		if r.Ramp.Len() < 1 {
			return &RampError{Stops: r.Ramp.Len()}
		}
		mode, row = RGB, rgbRow(img, g, r.Ramp, lo, hi)
	case *Float32Image:
		img.Lo, img.Hi = float32(lo), float32(hi)
		mode, row = Float, floatRow(img, g, lo, hi)
	default:
		return &UnsupportedModeError{Mode: fmt.Sprintf("%T", dst)}
	}

	if err := r.run(ctx, b.Dy(), row); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"mode":  mode,
		"range": [2]float64{lo, hi},
		"size":  b.Size(),
		"took":  time.Since(start),
	}).Debug("rasterized grid")

	return nil
}

// run calls row for every row, spread over bands of consecutive rows.
func (r *Rasterizer) run(ctx context.Context, rows int, row rowFunc) error {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	band := rows / (4 * workers)
	if band < 1 {
		band = 1
	}

	eg, bandCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for y0 := 0; y0 < rows; y0 += band {
		if bandCtx.Err() != nil {
			break
		}

		y0, y1 := y0, y0+band
		if y1 > rows {
			y1 = rows
		}

		eg.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := bandCtx.Err(); err != nil {
					return err
				}
				row(y)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func grayRow(dst *image.Gray, g *grid.Grid, lo, hi float64) rowFunc {
	w := dst.Rect.Dx()

	return func(y int) {
		pix := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, c := range g.Row(y)[:w] {
			pix[x] = channel(Scale(lo, hi, float64(c), 0, 255))
		}
	}
}

func floatRow(dst *Float32Image, g *grid.Grid, lo, hi float64) rowFunc {
	w := dst.Rect.Dx()

	return func(y int) {
		pix := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, c := range g.Row(y)[:w] {
			v := float64(c)
			if v < lo {
				v = lo
			}
			if v > hi {
				v = hi
			}
			pix[x] = float32(v)
		}
	}
}

func rgbRow(dst *image.RGBA, g *grid.Grid, stops *ramp.Ramp, lo, hi float64) rowFunc {
	w := dst.Rect.Dx()
	n := stops.Len()
	first, last := stops.Stop(0), stops.Stop(n-1)

	return func(y int) {
		pix := dst.Pix[y*dst.Stride : y*dst.Stride+4*w]
		for x, c := range g.Row(y)[:w] {
			h := float64(c)

			var r, gr, b uint8
			switch {
			case h < lo || h != h:
				r, gr, b = first.RGB(x, y)
			case h >= hi:
				r, gr, b = last.RGB(x, y)
			case n == 1:
				// a single stop colours the whole range
				r, gr, b = first.RGB(x, y)
			default:
				f := float64(n-1) * (h - lo) / (hi - lo)
				i := int(f)
				t := f - float64(i)
				if i >= n-1 {
					i, t = n-2, 1
				}

				r0, g0, b0 := stops.Stop(i).RGB(x, y)
				r1, g1, b1 := stops.Stop(i + 1).RGB(x, y)
				r, gr, b = blend(r0, r1, t), blend(g0, g1, t), blend(b0, b1, t)
			}

			o := 4 * x
			pix[o], pix[o+1], pix[o+2], pix[o+3] = r, gr, b, 0xff
		}
	}
}

func blend(c0, c1 uint8, t float64) uint8 {
	return channel(float64(c0)*(1-t) + float64(c1)*t)
}

// channel truncates v towards zero and saturates it into [0, 255].
func channel(v float64) uint8 {
	switch {
	case v >= 255:
		return 255
	case v > 0:
		return uint8(v)
	}
	return 0
}
