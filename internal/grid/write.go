package grid

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// Write serializes g in ArcInfo ASCII Grid format, one grid row per line.
func Write(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)

	header := []struct {
		keyword string
		value   string
	}{
		{"ncols", strconv.Itoa(g.Ncols)},
		{"nrows", strconv.Itoa(g.Nrows)},
		{"xllcorner", formatFloat(g.XllCorner)},
		{"yllcorner", formatFloat(g.YllCorner)},
		{"cellsize", formatFloat(g.CellSize)},
		{"NODATA_value", formatFloat(g.NoData)},
	}
	for _, h := range header {
		bw.WriteString(h.keyword)
		for i := len(h.keyword); i < 14; i++ {
			bw.WriteByte(' ')
		}
		bw.WriteString(h.value)
		bw.WriteByte('\n')
	}

	buf := make([]byte, 0, 32)
	for y := 0; y < g.Nrows; y++ {
		for x, c := range g.Row(y) {
			if x > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendFloat(buf[:0], float64(c), 'g', -1, 32)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteFile writes g to path, replacing any existing file.
func (g *Grid) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
