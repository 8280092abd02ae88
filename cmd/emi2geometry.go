package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufz-vislab/EmiReader/csvio"
	"github.com/ufz-vislab/EmiReader/geolib"
	"github.com/ufz-vislab/EmiReader/mesh"
	"github.com/ufz-vislab/EmiReader/mesh/vtu"
)

type emi2GeoOptions struct {
	CSVBase    string
	OutBase    string
	DEMFile    string
	ParamsFile string
}

// emi2GeoCmd represents the emi2geometry command
var emi2GeoCmd = &cobra.Command{
	Use:   "emi2geometry",
	Short: "Converts EMI survey files to geometry and value files",
	Long: `
Collects the measurement positions of an EMI survey into one point
geometry per dipole orientation, optionally drapes them onto a surface
DEM, and writes a .gml geometry file plus a plain value file per
orientation.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts emi2GeoOptions
		opts.CSVBase, _ = cmd.Flags().GetString("csv-input-file")
		opts.OutBase, _ = cmd.Flags().GetString("output-file")
		opts.DEMFile, _ = cmd.Flags().GetString("dem")
		opts.ParamsFile, _ = cmd.Flags().GetString("params")
		if opts.CSVBase == "" || opts.OutBase == "" {
			fmt.Println("error: must supply a csv base name (-i) and an output base name (-o)")
			os.Exit(1)
		}
		if err := runEmi2Geometry(opts); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
	},
}

func runEmi2Geometry(opts emi2GeoOptions) error {
	var dem *mesh.Mesh
	if opts.DEMFile != "" {
		var err error
		if dem, err = vtu.Read(opts.DEMFile); err != nil {
			return fmt.Errorf("reading mesh file: %w", err)
		}
		if dem.Dimension() != 2 {
			return fmt.Errorf("mesh %q: the surface DEM must be a 2d mesh", dem.Name)
		}
		fmt.Printf("Surface mesh read: %d nodes, %d cells.\n", dem.NumNodes(), dem.NumCells())
	}

	params := DefaultSurveyParameters()
	if opts.ParamsFile != "" {
		data, err := os.ReadFile(opts.ParamsFile)
		if err != nil {
			return err
		}
		if err := params.Parse(data); err != nil {
			return fmt.Errorf("parsing %s: %w", opts.ParamsFile, err)
		}
	}

	for _, dipole := range params.Dipoles {
		g := &geolib.Geometry{Name: "EMI Data " + dipole}
		var values []float64
		for _, region := range params.Regions {
			file := fmt.Sprintf("%s_%s_%s.txt", opts.CSVBase, region, dipole)
			fmt.Printf("Reading file %s.\n", file)
			points, err := csvio.ReadPoints(file, '\t', params.XColumn, params.YColumn, -1)
			if err != nil {
				return err
			}
			g.Points = append(g.Points, points...)

			vals, err := csvio.ReadColumn(file, '\t', params.ValueColumn)
			if err != nil {
				return err
			}
			values = append(values, vals...)
		}
		if len(g.Points) == 0 {
			return fmt.Errorf("no sample data in %s files for dipole %s", opts.CSVBase, dipole)
		}

		if dem != nil {
			if err := geolib.MapOnSurface(g, dem); err != nil {
				return err
			}
		}

		gmlName := fmt.Sprintf("%s_%s.gml", opts.OutBase, dipole)
		if err := geolib.WriteGML(gmlName, g); err != nil {
			return err
		}

		valueName := fmt.Sprintf("%s_%s.txt", opts.OutBase, dipole)
		if err := writeValueFile(valueName, values); err != nil {
			return err
		}
		fmt.Printf("Wrote %d values for dipole %s.\n", len(values), dipole)
	}
	return nil
}

// writeValueFile stores the raw measurements, one value per line.
func writeValueFile(path string, values []float64) error {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func init() {
	rootCmd.AddCommand(emi2GeoCmd)
	emi2GeoCmd.Flags().StringP("csv-input-file", "i", "", "base name of the csv files containing EMI data")
	emi2GeoCmd.Flags().StringP("output-file", "o", "", "base name of the output files")
	emi2GeoCmd.Flags().StringP("dem", "s", "", "surface DEM (.vtu) for mapping the survey points")
	emi2GeoCmd.Flags().String("params", "", "YAML file describing the survey layout")
}
