package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufz-vislab/EmiReader/geolib"
)

type buildingsOptions struct {
	GeoIn  string
	GeoOut string
	Height float64
}

// buildingsCmd represents the buildings command
var buildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "Uses polygons from building plans to create 3d objects",
	Long: `
Reads building outlines from a geometry file (.gml) or from polygon
footprints in a shapefile (.shp) and extrudes them by the given height:
every outline gets wall surfaces, every input surface a lifted roof
copy. The result is written as a .gml geometry.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts buildingsOptions
		opts.GeoIn, _ = cmd.Flags().GetString("geo-input-file")
		opts.GeoOut, _ = cmd.Flags().GetString("geo-output-file")
		opts.Height, _ = cmd.Flags().GetFloat64("size")
		if opts.GeoIn == "" || opts.GeoOut == "" {
			fmt.Println("error: must supply an input geometry (-i) and an output geometry (-o)")
			os.Exit(1)
		}
		if err := runBuildings(opts); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
	},
}

func runBuildings(opts buildingsOptions) error {
	fmt.Printf("Reading geometry %s.\n", opts.GeoIn)

	var (
		g   *geolib.Geometry
		err error
	)
	switch strings.ToLower(filepath.Ext(opts.GeoIn)) {
	case ".gml":
		g, err = geolib.ReadGML(opts.GeoIn)
	case ".shp":
		g, err = geolib.ReadFootprints(opts.GeoIn)
	default:
		return fmt.Errorf("unsupported geometry format: %s", filepath.Ext(opts.GeoIn))
	}
	if err != nil {
		return fmt.Errorf("reading geometry: %w", err)
	}
	if len(g.Points) == 0 {
		return fmt.Errorf("geometry %q contains no points", g.Name)
	}

	out := geolib.Extrude(g, opts.Height, "output")
	return geolib.WriteGML(opts.GeoOut, out)
}

func init() {
	rootCmd.AddCommand(buildingsCmd)
	buildingsCmd.Flags().StringP("geo-input-file", "i", "", "file containing the input geometry")
	buildingsCmd.Flags().StringP("geo-output-file", "o", "", "file the 3d geometry will be written to")
	buildingsCmd.Flags().Float64P("size", "s", 1.0, "height of the 3d objects (buildings) in metres")
}
