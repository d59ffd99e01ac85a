package tilejson

import (
	"encoding/json"
	"os"
	"path"

	"github.com/paulmach/orb"
)

// TileJSON represents a tile.json
type TileJSON struct {
	TileJSON    string     `json:"tilejson"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Scheme      string     `json:"scheme"`
	Tiles       []string   `json:"tiles"`
	Minzoom     uint8      `json:"minzoom"`
	Maxzoom     uint8      `json:"maxzoom"`
	Bounds      [4]float64 `json:"bounds"`
}

// New describes an xyz tile pyramid with zoom levels 0 to maxLod covering bound.
func New(name, description string, maxLod uint8, bound orb.Bound) TileJSON {
	return TileJSON{
		TileJSON:    "2.2.0",
		Name:        name,
		Description: description,
		Scheme:      "xyz",
		Tiles:       []string{"{z}/{x}/{y}.png"},
		Minzoom:     0,
		Maxzoom:     maxLod,
		Bounds:      [4]float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()},
	}
}

// Write a tile.json into outputDirectory
func Write(outputDirectory string, obj TileJSON) error {
	// marshal
	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return err
	}

	// create file
	f, err := os.Create(path.Join(outputDirectory, "tile.json"))
	if err != nil {
		return err
	}

	// write file
	_, err = f.Write(bytes)
	if err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
