// Package config reads render profiles.
//
// A profile is a TOML file like
//
//	mode = "RGB"
//	stops = ["water.png", "grass.png", "rock.png", "snow.png"]
//	workers = 4
//	previews = [128, 256, 512]
//	tile_size = 256
//
// Relative stop paths are resolved against the directory of the profile.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gruppe-adler/ascraster/internal/raster"
	"github.com/gruppe-adler/ascraster/internal/tiles"
)

// Profile holds the settings for one conversion.
type Profile struct {
	Mode     raster.Mode `toml:"mode"`
	Stops    []string    `toml:"stops"`
	Workers  int         `toml:"workers"`
	Previews []uint      `toml:"previews"`
	TileSize uint        `toml:"tile_size"`
}

// Default returns the profile used without a config file.
func Default() Profile {
	return Profile{
		Mode:     raster.Grayscale,
		TileSize: tiles.DefaultSize,
	}
}

// Read loads the profile at path on top of Default.
func Read(path string) (Profile, error) {
	p := Default()

	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return p, fmt.Errorf("reading %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return p, fmt.Errorf("reading %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	for i, stop := range p.Stops {
		if !filepath.IsAbs(stop) {
			p.Stops[i] = filepath.Join(dir, stop)
		}
	}

	if p.TileSize == 0 {
		return p, fmt.Errorf("reading %s: tile_size must be greater than 0", path)
	}

	return p, nil
}
