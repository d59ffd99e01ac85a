package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/gruppe-adler/ascraster/internal/config"
	"github.com/gruppe-adler/ascraster/internal/raster"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version of ascraster.
const Version = "0.2.0"

var (
	// configFile is the optional TOML render profile.
	configFile string

	// verbose enables debug logging.
	verbose bool
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "ascraster",
	Short: "Render ArcInfo ASCII Grids as images.",
	Long: `ascraster converts ArcInfo ASCII Grid files (.asc) into images.
Cell values are mapped to grayscale, to a colour gradient between reference
images sorted by height, or kept as clamped float values.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ascraster v%s\n", Version)
	},
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	Root.PersistentFlags().StringVar(&configFile, "config", "", "TOML render profile")
	Root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")

	Root.AddCommand(versionCmd)
	Root.AddCommand(renderCmd)
	Root.AddCommand(tilesCmd)
	Root.AddCommand(infoCmd)
}

// modeFlag registers -f/--format on fs.
func modeFlag(fs *pflag.FlagSet) {
	mode := raster.Grayscale
	fs.VarP(&mode, "format", "f", "Output mode: L (grayscale), RGB (colour stops) or F (float)")
}

// loadProfile reads --config if given and applies explicitly set flags on top.
func loadProfile(cmd *cobra.Command) (config.Profile, error) {
	profile := config.Default()
	if configFile != "" {
		var err error
		if profile, err = config.Read(configFile); err != nil {
			return profile, err
		}
	}

	fs := cmd.Flags()
	if f := fs.Lookup("format"); f != nil && f.Changed {
		profile.Mode = *f.Value.(*raster.Mode)
	}
	if fs.Changed("workers") {
		profile.Workers, _ = fs.GetInt("workers")
	}
	if fs.Changed("preview") {
		profile.Previews, _ = fs.GetUintSlice("preview")
	}
	if fs.Changed("tile-size") {
		profile.TileSize, _ = fs.GetUint("tile-size")
	}

	return profile, nil
}

// step prints a progress line, runs fn and reports how long it took.
func step(out io.Writer, doing, done string, fn func() error) error {
	timer := time.Now()
	fmt.Fprintln(out, "▶️ ", doing)

	if err := fn(); err != nil {
		return err
	}

	fmt.Fprintln(out, "✔️ ", done, "in", time.Since(timer).String())
	return nil
}
