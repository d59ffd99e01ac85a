package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gruppe-adler/ascraster/internal/raster"
	"github.com/gruppe-adler/ascraster/internal/tilejson"
	"github.com/gruppe-adler/ascraster/internal/tiles"
	"github.com/gruppe-adler/ascraster/internal/validate"
	"github.com/spf13/cobra"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles <in.asc> [colour stops...]",
	Short: "Render a grid into an xyz tile pyramid",
	Long: `tiles renders the grid <in.asc> like render does and cuts the result into
png tiles stored as <out>/<z>/<x>/<y>.png, together with a tile.json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		out := cmd.OutOrStdout()

		profile, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			profile.Stops = args[1:]
		}

		outputDir, _ := cmd.Flags().GetString("out")
		if err := validate.OutputDirectory(outputDir); err != nil {
			return err
		}
		if err := validate.Inputs(args[0], profile.Stops); err != nil {
			return err
		}
		fmt.Fprintln(out, "✔️  Validated input and output paths")

		g, stops, err := loadInputs(out, args[0], profile)
		if err != nil {
			return err
		}

		r := &raster.Rasterizer{Ramp: stops, Workers: profile.Workers}
		img, err := r.Render(cmd.Context(), g, profile.Mode)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "✔️  Rasterized image in", time.Since(start).String())

		maxLod := tiles.CalcMaxLod(img, profile.TileSize)
		fmt.Fprintln(out, "ℹ️  Calculated max lod:", maxLod)

		err = step(out, "Building tiles", "Built tiles", func() error {
			for lod := uint8(0); lod <= maxLod; lod++ {
				timer := time.Now()
				if err := tiles.BuildTileSet(cmd.Context(), lod, img, profile.TileSize, outputDir); err != nil {
					return err
				}
				fmt.Fprintln(out, "    ✔️  Finished tiles for LOD", lod, "in", time.Since(timer).String())
			}
			return nil
		})
		if err != nil {
			return err
		}

		err = step(out, "Creating tile.json", "Created tile.json", func() error {
			name := filepath.Base(args[0])
			desc := fmt.Sprintf("%s rendered in %s mode", name, profile.Mode)
			return tilejson.Write(outputDir, tilejson.New(name, desc, maxLod, g.Bounds()))
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n    🎉  Finished in %s\n", time.Since(start).String())
		return nil
	},
}

func init() {
	modeFlag(tilesCmd.Flags())
	tilesCmd.Flags().String("out", "", "Path to output directory")
	tilesCmd.Flags().Int("workers", 0, "Number of rows rendered in parallel (0 = one per CPU)")
	tilesCmd.Flags().Uint("tile-size", tiles.DefaultSize, "Edge length of a tile in pixels")
	tilesCmd.MarkFlagRequired("out")
}
