package raster

import (
	"image"
	"image/draw"
	"strings"
)

// Mode selects how cell values are turned into pixels.
type Mode int

const (
	// Grayscale scales values to an 8 bit intensity.
	Grayscale Mode = iota
	// RGB interpolates between the stops of a colour ramp.
	RGB
	// Float clamps values into the value range and keeps them as float32.
	Float
)

func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "L"
	case RGB:
		return "RGB"
	case Float:
		return "F"
	}
	return "unknown"
}

// ParseMode accepts the short names L, RGB and F as well as grayscale, gray,
// rgb and float, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "l", "gray", "grayscale":
		return Grayscale, nil
	case "rgb":
		return RGB, nil
	case "f", "float":
		return Float, nil
	}
	return 0, &UnsupportedModeError{Mode: s}
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// UnmarshalText lets modes be read from config files.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// MarshalText is the inverse of UnmarshalText.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// NewImage allocates an empty image of the given size for mode.
func NewImage(mode Mode, width, height int) (draw.Image, error) {
	rect := image.Rect(0, 0, width, height)

	switch mode {
	case Grayscale:
		return image.NewGray(rect), nil
	case RGB:
		return image.NewRGBA(rect), nil
	case Float:
		return NewFloat32Image(rect), nil
	}
	return nil, &UnsupportedModeError{Mode: mode.String()}
}
