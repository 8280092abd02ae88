package cmd

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/ufz-vislab/EmiReader/csvio"
	"github.com/ufz-vislab/EmiReader/mesh"
	"github.com/ufz-vislab/EmiReader/mesh/vtu"
)

// SurveyParameters describes the file layout of an EMI survey: which
// dipole orientations were measured, which region files exist per
// orientation and which columns hold position and value. Region files
// are named <base>_<region>_<dipole>.txt.
type SurveyParameters struct {
	PropertyPrefix string   `yaml:"PropertyPrefix"`
	Dipoles        []string `yaml:"Dipoles"`
	Regions        []string `yaml:"Regions"`
	XColumn        int      `yaml:"XColumn"`
	YColumn        int      `yaml:"YColumn"`
	ValueColumn    int      `yaml:"ValueColumn"`
}

func (sp *SurveyParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

// DefaultSurveyParameters matches the TM survey layout: horizontal and
// vertical dipole files over regions A, B, C with tab-separated
// id, x, y, value rows.
func DefaultSurveyParameters() SurveyParameters {
	return SurveyParameters{
		PropertyPrefix: "TM_DD",
		Dipoles:        []string{"H", "V"},
		Regions:        []string{"A", "B", "C"},
		XColumn:        1,
		YColumn:        2,
		ValueColumn:    3,
	}
}

type addEmiOptions struct {
	MeshIn     string
	MeshOut    string
	CSVBase    string
	ParamsFile string
}

// addEmiCmd represents the addemi command
var addEmiCmd = &cobra.Command{
	Use:   "addemi",
	Short: "Add EMI data as a scalar cell array to a 2d mesh",
	Long: `
Reads the region files of an EMI survey, transfers the measurements
onto the cells of a 2d mesh (each sample is assigned to the cell
containing it, cell values are sample averages) and attaches one scalar
cell array per dipole orientation.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts addEmiOptions
		opts.MeshIn, _ = cmd.Flags().GetString("mesh-input-file")
		opts.MeshOut, _ = cmd.Flags().GetString("mesh-output-file")
		opts.CSVBase, _ = cmd.Flags().GetString("csv")
		opts.ParamsFile, _ = cmd.Flags().GetString("params")
		if opts.MeshIn == "" || opts.MeshOut == "" || opts.CSVBase == "" {
			fmt.Println("error: must supply a mesh input file (-i), a mesh output file (-o) and a csv base name (--csv)")
			os.Exit(1)
		}
		if err := runAddEmi(opts); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
	},
}

func runAddEmi(opts addEmiOptions) error {
	fmt.Printf("Reading mesh %s.\n", opts.MeshIn)
	m, err := vtu.Read(opts.MeshIn)
	if err != nil {
		return fmt.Errorf("reading mesh file: %w", err)
	}
	if m.Dimension() != 2 {
		return fmt.Errorf("mesh %q: only 2d meshes can carry EMI data", m.Name)
	}
	fmt.Printf("Mesh read: %d nodes, %d cells.\n", m.NumNodes(), m.NumCells())

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
		samples, err := readSurveySamples(opts.CSVBase, dipole, params)
		if err != nil {
			return err
		}
		data, err := mesh.Rasterize(m, samples)
		if err != nil {
			return err
		}
		name := params.PropertyPrefix + "_" + dipole
		if err := m.AddFloatProperty(name, mesh.CellData, data); err != nil {
			return err
		}
	}

	fmt.Println("Writing result...")
	return vtu.Write(opts.MeshOut, m)
}

// readSurveySamples concatenates the region files of one dipole
// orientation. An unreadable file or an empty survey fails the run.
func readSurveySamples(base, dipole string, params SurveyParameters) ([]mesh.Sample, error) {
	var samples []mesh.Sample
	for _, region := range params.Regions {
		file := fmt.Sprintf("%s_%s_%s.txt", base, region, dipole)
		fmt.Printf("Reading file %s.\n", file)
		points, err := csvio.ReadPoints(file, '\t', params.XColumn, params.YColumn, params.ValueColumn)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			samples = append(samples, mesh.Sample{X: p.X, Y: p.Y, Value: p.Z})
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no sample data in %s files for dipole %s", base, dipole)
	}
	return samples, nil
}

func init() {
	rootCmd.AddCommand(addEmiCmd)
	addEmiCmd.Flags().StringP("mesh-input-file", "i", "", "file containing the input mesh")
	addEmiCmd.Flags().StringP("mesh-output-file", "o", "", "file the mesh will be written to")
	addEmiCmd.Flags().String("csv", "", "base name of the csv files containing EMI data")
	addEmiCmd.Flags().String("params", "", "YAML file describing the survey layout, e.g.:\n\tPropertyPrefix: TM_DD\n\tDipoles: [H, V]\n\tRegions: [A, B, C]")
}
