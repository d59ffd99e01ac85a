package grid

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
)

// DefaultNoData is the sentinel used when the header has no NODATA_VALUE line.
const DefaultNoData = -999

// Grid represents an ArcInfo ASCII Grid held in memory.
//
// Cells are stored row-major, top row first, so the value at column x and
// row y lives at index x + y*Ncols. A Grid is never modified after it has
// been loaded.
type Grid struct {
	Ncols, Nrows         int
	XllCorner, YllCorner float64
	CellSize             float64
	NoData               float64

	cells []float32

	statsOnce sync.Once
	min, max  float64
}

// New creates a grid from header values and row-major cells.
// len(cells) has to equal ncols*nrows.
func New(ncols, nrows int, xll, yll, cellSize, noData float64, cells []float32) (*Grid, error) {
	if ncols <= 0 || nrows <= 0 {
		return nil, &FormatError{Msg: fmt.Sprintf("grid dimensions must be positive, got %dx%d", ncols, nrows)}
	}
	if len(cells) != ncols*nrows {
		return nil, &FormatError{Msg: fmt.Sprintf("expected %d cell values (%d cols x %d rows), got %d", ncols*nrows, ncols, nrows, len(cells))}
	}

	return &Grid{
		Ncols:     ncols,
		Nrows:     nrows,
		XllCorner: xll,
		YllCorner: yll,
		CellSize:  cellSize,
		NoData:    noData,
		cells:     cells,
	}, nil
}

// Dims returns the dimensions of the grid.
func (g *Grid) Dims() (cols, rows int) {
	return g.Ncols, g.Nrows
}

// At returns the value at column x and row y.
// Coordinates are not checked; out of range access panics or reads a
// neighbouring row.
func (g *Grid) At(x, y int) float64 {
	return float64(g.cells[x+y*g.Ncols])
}

// Row returns the cells of row y. The returned slice must not be modified.
func (g *Grid) Row(y int) []float32 {
	return g.cells[y*g.Ncols : (y+1)*g.Ncols]
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Max returns the largest cell value. It is computed on first use.
func (g *Grid) Max() float64 {
	g.statsOnce.Do(g.computeStats)
	return g.max
}

// Min returns the smallest cell value. It is computed on first use.
func (g *Grid) Min() float64 {
	g.statsOnce.Do(g.computeStats)
	return g.min
}

func (g *Grid) computeStats() {
	g.min = float64(g.cells[0])
	g.max = float64(g.cells[0])

	for _, c := range g.cells[1:] {
		v := float64(c)
		if v > g.max {
			g.max = v
		}
		if v < g.min {
			g.min = v
		}
	}
}

// Bounds returns the geographic extent covered by the grid.
func (g *Grid) Bounds() orb.Bound {
	return orb.Bound{
		Min: orb.Point{g.XllCorner, g.YllCorner},
		Max: orb.Point{
			g.XllCorner + float64(g.Ncols)*g.CellSize,
			g.YllCorner + float64(g.Nrows)*g.CellSize,
		},
	}
}
