package raster

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/gruppe-adler/ascraster/internal/grid"
	"github.com/gruppe-adler/ascraster/internal/ramp"
)

func newGrid(t *testing.T, ncols, nrows int, cells ...float32) *grid.Grid {
	t.Helper()
	g, err := grid.New(ncols, nrows, 0, 0, 1, grid.DefaultNoData, cells)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

func newRamp(t *testing.T, images ...image.Image) *ramp.Ramp {
	t.Helper()
	r, err := ramp.New(images...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func TestScale(t *testing.T) {
	tests := []struct {
		name                 string
		inMin, inMax, v      float64
		outMin, outMax, want float64
	}{
		{"below range", 0, 100, -1, 0, 255, 0},
		{"at min", 0, 100, 0, 0, 255, 0},
		{"middle", 0, 100, 50, 0, 255, 127.5},
		{"at max", 0, 100, 100, 0, 255, 255},
		{"above range extrapolates", 0, 100, 200, 0, 255, 510},
		{"offset ranges", 10, 20, 15, 100, 200, 150},
		{"below offset range", 10, 20, 5, 100, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(tt.inMin, tt.inMax, tt.v, tt.outMin, tt.outMax)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Scale(%v, %v, %v, %v, %v) = %v, want %v", tt.inMin, tt.inMax, tt.v, tt.outMin, tt.outMax, got, tt.want)
			}
		})
	}
}

func TestGrayscale(t *testing.T) {
	g := newGrid(t, 4, 1, 0, 50, 100, -20)

	img, err := (&Rasterizer{}).Render(context.Background(), g, Grayscale)
	if err != nil {
		t.Fatal(err)
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("Render returned %T, want *image.Gray", img)
	}
	if want := []uint8{0, 127, 255, 0}; !reflect.DeepEqual(gray.Pix, want) {
		t.Errorf("pixels = %v, want %v", gray.Pix, want)
	}
}

func TestGrayscaleDegenerateRange(t *testing.T) {
	g := newGrid(t, 2, 1, 0, 0)

	_, err := (&Rasterizer{}).Render(context.Background(), g, Grayscale)

	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("err = %v, want *RangeError", err)
	}
}

func TestFloatClamp(t *testing.T) {
	dst := NewFloat32Image(image.Rect(0, 0, 3, 1))

	// fixed range independent of the grid
	row := floatRow(dst, newGrid(t, 3, 1, -5, 15, 7), 0, 10)
	row(0)

	if want := []float32{0, 10, 7}; !reflect.DeepEqual(dst.Pix, want) {
		t.Errorf("pixels = %v, want %v", dst.Pix, want)
	}
}

func TestFloatRender(t *testing.T) {
	g := newGrid(t, 2, 2, -5, 7, 10, 2.5)

	img, err := (&Rasterizer{}).Render(context.Background(), g, Float)
	if err != nil {
		t.Fatal(err)
	}

	f := img.(*Float32Image)
	if want := []float32{0, 7, 10, 2.5}; !reflect.DeepEqual(f.Pix, want) {
		t.Errorf("pixels = %v, want %v", f.Pix, want)
	}
	if f.Lo != 0 || f.Hi != 10 {
		t.Errorf("display range = [%v, %v], want [0, 10]", f.Lo, f.Hi)
	}
	if got := f.At(1, 1); got != (color.Gray16{Y: 0x3fff}) {
		t.Errorf("At(1, 1) = %v, want quarter gray", got)
	}
}

func TestRGBTwoStops(t *testing.T) {
	g := newGrid(t, 4, 1, 5, 0, 10, -3)
	r := &Rasterizer{Ramp: newRamp(t, solid(red), solid(blue))}

	img, err := r.Render(context.Background(), g, RGB)
	if err != nil {
		t.Fatal(err)
	}

	rgba := img.(*image.RGBA)
	want := []color.RGBA{{127, 0, 127, 255}, red, blue, red}
	for x, c := range want {
		if got := rgba.RGBAAt(x, 0); got != c {
			t.Errorf("pixel %d = %v, want %v", x, got, c)
		}
	}
}

func TestRGBAboveRange(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))
	row := rgbRow(dst, newGrid(t, 2, 1, 10, 12), newRamp(t, solid(red), solid(blue)), 0, 10)
	row(0)

	for x := 0; x < 2; x++ {
		if got := dst.RGBAAt(x, 0); got != blue {
			t.Errorf("pixel %d = %v, want %v", x, got, blue)
		}
	}
}

func TestRGBThreeStops(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	gray := color.RGBA{100, 100, 100, 255}
	white := color.RGBA{200, 200, 200, 255}

	g := newGrid(t, 5, 1, 2.5, 5, 7.5, 8.75, 10)
	r := &Rasterizer{Ramp: newRamp(t, solid(black), solid(gray), solid(white))}

	img, err := r.Render(context.Background(), g, RGB)
	if err != nil {
		t.Fatal(err)
	}

	rgba := img.(*image.RGBA)
	want := []color.RGBA{
		{50, 50, 50, 255},
		gray,
		{150, 150, 150, 255},
		{175, 175, 175, 255},
		white,
	}
	for x, c := range want {
		if got := rgba.RGBAAt(x, 0); got != c {
			t.Errorf("pixel %d = %v, want %v", x, got, c)
		}
	}
}

func TestRGBWrapsStops(t *testing.T) {
	swatch := image.NewRGBA(image.Rect(0, 0, 2, 2))
	swatch.SetRGBA(0, 0, color.RGBA{1, 1, 1, 255})
	swatch.SetRGBA(1, 0, color.RGBA{2, 2, 2, 255})
	swatch.SetRGBA(0, 1, color.RGBA{3, 3, 3, 255})
	swatch.SetRGBA(1, 1, color.RGBA{4, 4, 4, 255})

	cells := make([]float32, 6*8)
	for i := range cells {
		cells[i] = 1
	}
	g := newGrid(t, 6, 8, cells...)

	r := &Rasterizer{Ramp: newRamp(t, solid(red), swatch)}
	img, err := r.Render(context.Background(), g, RGB)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := img.(*image.RGBA).RGBAAt(5, 7), (color.RGBA{4, 4, 4, 255}); got != want {
		t.Errorf("pixel (5, 7) = %v, want %v", got, want)
	}
	if got, want := img.(*image.RGBA).RGBAAt(4, 7), (color.RGBA{3, 3, 3, 255}); got != want {
		t.Errorf("pixel (4, 7) = %v, want %v", got, want)
	}
}

func TestRGBSingleStop(t *testing.T) {
	g := newGrid(t, 3, 1, -1, 4, 8)
	r := &Rasterizer{Ramp: newRamp(t, solid(red))}

	img, err := r.Render(context.Background(), g, RGB)
	if err != nil {
		t.Fatal(err)
	}

	for x := 0; x < 3; x++ {
		if got := img.(*image.RGBA).RGBAAt(x, 0); got != red {
			t.Errorf("pixel %d = %v, want %v", x, got, red)
		}
	}
}

func TestRGBWithoutStops(t *testing.T) {
	g := newGrid(t, 1, 1, 1)

	for _, r := range []*Rasterizer{{}, {Ramp: newRamp(t)}} {
		_, err := r.Render(context.Background(), g, RGB)

		var rampErr *RampError
		if !errors.As(err, &rampErr) {
			t.Errorf("err = %v, want *RampError", err)
		}
	}
}

func TestRGBDegenerateRange(t *testing.T) {
	g := newGrid(t, 2, 1, 0, -4)
	r := &Rasterizer{Ramp: newRamp(t, solid(red), solid(blue))}

	img, err := r.Render(context.Background(), g, RGB)
	if err != nil {
		t.Fatal(err)
	}

	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 0); got != blue {
		t.Errorf("value at max = %v, want %v", got, blue)
	}
	if got := rgba.RGBAAt(1, 0); got != red {
		t.Errorf("value below min = %v, want %v", got, red)
	}
}

func TestUnsupportedMode(t *testing.T) {
	g := newGrid(t, 1, 1, 1)

	err := (&Rasterizer{}).Raster(context.Background(), g, image.NewNRGBA(image.Rect(0, 0, 1, 1)))

	var modeErr *UnsupportedModeError
	if !errors.As(err, &modeErr) {
		t.Errorf("err = %v, want *UnsupportedModeError", err)
	}

	if _, err := NewImage(Mode(42), 1, 1); !errors.As(err, &modeErr) {
		t.Errorf("NewImage err = %v, want *UnsupportedModeError", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"L", Grayscale, true},
		{"grayscale", Grayscale, true},
		{"Gray", Grayscale, true},
		{"RGB", RGB, true},
		{"rgb", RGB, true},
		{"F", Float, true},
		{"float", Float, true},
		{"CMYK", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseMode(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDestinationLargerThanGrid(t *testing.T) {
	g := newGrid(t, 2, 2, 1, 2, 3, 4)

	if err := (&Rasterizer{}).Raster(context.Background(), g, image.NewGray(image.Rect(0, 0, 3, 2))); err == nil {
		t.Error("expected error for destination wider than grid")
	}
}

func TestWorkersProduceSameImage(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	cells := make([]float32, 97*61)
	for i := range cells {
		cells[i] = rnd.Float32()*1000 - 100
	}
	g := newGrid(t, 97, 61, cells...)
	stops := newRamp(t, solid(red), solid(color.RGBA{0, 255, 0, 255}), solid(blue))

	for _, mode := range []Mode{Grayscale, RGB, Float} {
		t.Run(mode.String(), func(t *testing.T) {
			serial, err := (&Rasterizer{Ramp: stops, Workers: 1}).Render(context.Background(), g, mode)
			if err != nil {
				t.Fatal(err)
			}
			parallel, err := (&Rasterizer{Ramp: stops, Workers: 7}).Render(context.Background(), g, mode)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(serial, parallel) {
				t.Error("parallel rendering differs from serial rendering")
			}
		})
	}
}

func TestCanceledContext(t *testing.T) {
	g := newGrid(t, 2, 2, 1, 2, 3, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Rasterizer{}).Render(ctx, g, Grayscale)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFloatToGrid(t *testing.T) {
	ref, err := grid.New(2, 1, 5, 6, 7, -1, []float32{3, 9})
	if err != nil {
		t.Fatal(err)
	}

	img, err := (&Rasterizer{}).Render(context.Background(), ref, Float)
	if err != nil {
		t.Fatal(err)
	}

	out, err := img.(*Float32Image).ToGrid(ref)
	if err != nil {
		t.Fatal(err)
	}
	if out.XllCorner != 5 || out.YllCorner != 6 || out.CellSize != 7 || out.NoData != -1 {
		t.Errorf("header = %+v, want the reference header", out)
	}
	if out.At(0, 0) != 3 || out.At(1, 0) != 9 {
		t.Errorf("cells = (%v, %v), want (3, 9)", out.At(0, 0), out.At(1, 0))
	}
}
