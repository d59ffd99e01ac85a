package grid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// largest token the cell scanner accepts
const maxTokenSize = 1 << 20

// cells preallocated up front; larger grids grow by append
const maxPrealloc = 1 << 24

type header struct {
	ncols, nrows         int
	xllCorner, yllCorner float64
	cellSize             float64
}

// mandatory header lines, in the order they have to appear
var headerFields = []struct {
	keyword string
	set     func(h *header, value string) error
}{
	{"ncols", func(h *header, v string) (err error) { h.ncols, err = parseDim(v); return }},
	{"nrows", func(h *header, v string) (err error) { h.nrows, err = parseDim(v); return }},
	{"xllcorner", func(h *header, v string) (err error) { h.xllCorner, err = strconv.ParseFloat(v, 64); return }},
	{"yllcorner", func(h *header, v string) (err error) { h.yllCorner, err = strconv.ParseFloat(v, 64); return }},
	{"cellsize", func(h *header, v string) (err error) { h.cellSize, err = strconv.ParseFloat(v, 64); return }},
}

const noDataKeyword = "nodata_value"

// Parse reads an ArcInfo ASCII Grid.
//
// The five mandatory header lines (ncols, nrows, xllcorner, yllcorner,
// cellsize) have to appear in exactly this order. Keywords are matched
// case-insensitively by prefix. An optional nodata_value line may follow;
// if the next line is anything else it is treated as the first row of cell
// data. Cell values are whitespace separated, line breaks carry no meaning.
func Parse(reader io.Reader) (*Grid, error) {
	br := bufio.NewReader(reader)
	h := header{}
	lineNo := 0

	for _, field := range headerFields {
		line, err := readLine(br)
		lineNo++
		if err == io.EOF {
			return nil, &FormatError{Line: lineNo, Keyword: field.keyword, Msg: "unexpected end of file"}
		}
		if err != nil {
			return nil, err
		}

		value, err := headerValue(line, field.keyword)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Keyword: field.keyword, Msg: err.Error()}
		}
		if err := field.set(&h, value); err != nil {
			return nil, &FormatError{Line: lineNo, Keyword: field.keyword, Msg: err.Error()}
		}
	}

	n := h.ncols * h.nrows
	cells := make([]float32, 0, min(n, maxPrealloc))
	noData := float64(DefaultNoData)

	// the line after cellsize is either nodata_value or already cell data
	line, err := readLine(br)
	lineNo++
	switch {
	case err == io.EOF:
	case err != nil:
		return nil, err
	case strings.HasPrefix(strings.ToLower(line), noDataKeyword):
		value, err := headerValue(line, noDataKeyword)
		if err == nil {
			noData, err = strconv.ParseFloat(value, 64)
		}
		if err != nil {
			return nil, &FormatError{Line: lineNo, Keyword: noDataKeyword, Msg: err.Error()}
		}
	default:
		for _, token := range strings.Fields(line) {
			if cells, err = appendCell(cells, token); err != nil {
				return nil, err
			}
		}
	}

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		if cells, err = appendCell(cells, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(h.ncols, h.nrows, h.xllCorner, h.yllCorner, h.cellSize, noData, cells)
}

// readLine returns the next line without its line terminator.
// io.EOF is only returned if there is nothing left to read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}

	return strings.TrimRight(line, "\r\n"), err
}

// headerValue checks that line starts with keyword and returns its value field.
func headerValue(line, keyword string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(line), keyword) {
		return "", fmt.Errorf("got %q", line)
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("missing value")
	}

	return fields[1], nil
}

func parseDim(value string) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if i <= 0 {
		return 0, fmt.Errorf("must be greater than 0, got %d", i)
	}

	return i, nil
}

func appendCell(cells []float32, token string) ([]float32, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return cells, &ParseError{Index: len(cells), Token: token, Err: err}
	}

	return append(cells, float32(f)), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
