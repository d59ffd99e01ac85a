package grid

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Read loads the ArcInfo ASCII Grid stored at path.
func Read(path string) (*Grid, error) {
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	g, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"ncols": g.Ncols,
		"nrows": g.Nrows,
		"took":  time.Since(start),
	}).Debug("loaded grid")

	return g, nil
}
