package grid

import "fmt"

// FormatError reports a malformed header or a cell count that doesn't
// match the header dimensions.
type FormatError struct {
	Line    int    // 1-based line number, 0 if not tied to a line
	Keyword string // expected header keyword, if any
	Msg     string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Keyword != "":
		return fmt.Sprintf("line %d: expected %s header: %s", e.Line, e.Keyword, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	default:
		return e.Msg
	}
}

// ParseError reports a cell token that is not a floating point number.
type ParseError struct {
	Index int // index of the cell in the flat buffer
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cell %d: invalid value %q: %v", e.Index, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
