package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/gruppe-adler/ascraster/internal/grid"
	"github.com/gruppe-adler/ascraster/internal/info"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <in.asc>",
	Short: "Print the extent and value range of a grid as GeoJSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := grid.Read(args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(info.Footprint(g, filepath.Base(args[0])), "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
