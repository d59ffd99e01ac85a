package cli

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gruppe-adler/ascraster/internal/config"
	"github.com/gruppe-adler/ascraster/internal/grid"
	"github.com/gruppe-adler/ascraster/internal/imageio"
	"github.com/gruppe-adler/ascraster/internal/preview"
	"github.com/gruppe-adler/ascraster/internal/ramp"
	"github.com/gruppe-adler/ascraster/internal/raster"
	"github.com/gruppe-adler/ascraster/internal/validate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <in.asc> <out> [colour stops...]",
	Short: "Render a grid into an image",
	Long: `render converts the grid <in.asc> into the image <out>. The image format
follows the file extension (png, jpg, gif, bmp, tif). Float output may also
be written as .asc.

In RGB mode the colour stops are images sorted from the lowest to the highest
value. Stops are tiled if they are smaller than the grid.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		if len(args) > 2 {
			profile.Stops = args[2:]
		}

		return runRender(cmd.Context(), cmd, args[0], args[1], profile)
	},
}

func init() {
	modeFlag(renderCmd.Flags())
	renderCmd.Flags().Int("workers", 0, "Number of rows rendered in parallel (0 = one per CPU)")
	renderCmd.Flags().UintSlice("preview", nil, "Heights of downscaled previews to write next to the output")
}

func runRender(ctx context.Context, cmd *cobra.Command, inPath, outPath string, profile config.Profile) error {
	start := time.Now()
	out := cmd.OutOrStdout()

	if err := validate.Inputs(inPath, profile.Stops); err != nil {
		return err
	}
	if err := validate.OutputFile(outPath); err != nil {
		return err
	}
	if err := checkOutputFormat(outPath, profile.Mode); err != nil {
		return err
	}
	fmt.Fprintln(out, "✔️  Validated input and output paths")

	g, stops, err := loadInputs(out, inPath, profile)
	if err != nil {
		return err
	}

	var img draw.Image
	err = step(out, "Rasterizing image", "Rasterized image", func() (err error) {
		r := &raster.Rasterizer{Ramp: stops, Workers: profile.Workers}
		img, err = r.Render(ctx, g, profile.Mode)
		return err
	})
	if err != nil {
		return err
	}

	err = step(out, "Saving image", "Saved image", func() error {
		return save(outPath, img, g)
	})
	if err != nil {
		return err
	}

	if len(profile.Previews) > 0 {
		err = step(out, "Building previews", "Built previews", func() error {
			written, err := preview.Build(outPath, img, profile.Previews)
			for _, p := range written {
				logrus.WithField("path", p).Debug("wrote preview")
			}
			return err
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n    🎉  Finished in %s\n", time.Since(start).String())
	return nil
}

// loadInputs reads the grid and, in RGB mode, the colour stops.
func loadInputs(out io.Writer, inPath string, profile config.Profile) (*grid.Grid, *ramp.Ramp, error) {
	var g *grid.Grid
	err := step(out, "Loading grid", "Loaded grid", func() (err error) {
		g, err = grid.Read(inPath)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(out, "ℹ️  Grid has %d columns and %d rows, max value %g\n", g.Ncols, g.Nrows, g.Max())

	if profile.Mode != raster.RGB {
		if len(profile.Stops) > 0 {
			logrus.WithField("mode", profile.Mode).Warn("colour stops are only used in RGB mode")
		}
		return g, nil, nil
	}

	if len(profile.Stops) == 0 {
		return nil, nil, &raster.RampError{}
	}

	var stops *ramp.Ramp
	err = step(out, "Loading colour stops", "Loaded colour stops", func() (err error) {
		stops, err = ramp.Load(profile.Stops...)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return g, stops, nil
}

// checkOutputFormat fails early for output paths that cannot be written.
func checkOutputFormat(outPath string, mode raster.Mode) error {
	if isGridPath(outPath) {
		if mode != raster.Float {
			return fmt.Errorf("%s: only float output (-f F) can be written as ASCII grid", outPath)
		}
		return nil
	}

	_, err := imageio.EncoderFor(outPath)
	return err
}

func isGridPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".asc")
}

// save writes img to outPath. Float images written to .asc keep the
// geo-referencing of g.
func save(outPath string, img image.Image, g *grid.Grid) error {
	if !isGridPath(outPath) {
		return imageio.Save(outPath, img)
	}

	f, ok := img.(*raster.Float32Image)
	if !ok {
		return fmt.Errorf("%s: only float output can be written as ASCII grid", outPath)
	}

	out, err := f.ToGrid(g)
	if err != nil {
		return err
	}

	return out.WriteFile(outPath)
}
