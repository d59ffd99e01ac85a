package raster

import "fmt"

// UnsupportedModeError is returned for output modes other than grayscale,
// RGB and float.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported output mode %q (want L, RGB or F)", e.Mode)
}

// RangeError is returned when the value range is empty and values cannot be
// scaled.
type RangeError struct {
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("degenerate value range [%g, %g]", e.Min, e.Max)
}

// RampError is returned when RGB output is requested without colour stops.
type RampError struct {
	Stops int
}

func (e *RampError) Error() string {
	return fmt.Sprintf("RGB output needs at least one colour stop, got %d", e.Stops)
}
