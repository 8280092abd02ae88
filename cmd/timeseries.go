package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ufz-vislab/EmiReader/mesh"
	"github.com/ufz-vislab/EmiReader/mesh/vtu"
)

type timeSeriesOptions struct {
	CSVFile   string
	OutBase   string
	BaseMesh  string
	Overwrite bool
}

// timeSeriesCmd represents the timeseries command
var timeSeriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Adds a scalar array time series from a csv file to a mesh series",
	Long: `
Reads a csv file holding one block of comma-separated rows per time
step (blocks are separated by empty lines, the first field of each row
is a label and is skipped, "NaN" becomes 0) and attaches each block as
a scalar cell array. With --base, every step starts from the given
mesh and is written to <output><N>.vtu; without it, the time step
meshes <output><N>.vtu must already exist and are rewritten with the
new array added.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts timeSeriesOptions
		opts.CSVFile, _ = cmd.Flags().GetString("csv")
		opts.OutBase, _ = cmd.Flags().GetString("output")
		opts.BaseMesh, _ = cmd.Flags().GetString("base")
		opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
		if opts.CSVFile == "" || opts.OutBase == "" {
			fmt.Println("error: must supply a csv file (-i) and an output base name (-t)")
			os.Exit(1)
		}
		if err := runTimeSeries(opts); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
	},
}

func runTimeSeries(opts timeSeriesOptions) error {
	blocks, err := readTimeStepBlocks(opts.CSVFile)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("%s: no time step data", opts.CSVFile)
	}

	propName := strings.TrimSuffix(filepath.Base(opts.CSVFile), filepath.Ext(opts.CSVFile))

	for step, block := range blocks {
		meshFile := opts.BaseMesh
		if meshFile == "" {
			meshFile = fmt.Sprintf("%s%d.vtu", opts.OutBase, step)
		}
		m, err := vtu.Read(meshFile)
		if err != nil {
			return fmt.Errorf("no mesh for time step %d: %w", step, err)
		}

		materials, ok := m.IntProperty("MaterialIDs", mesh.CellData)
		if !ok {
			return fmt.Errorf("mesh %q carries no MaterialIDs array", m.Name)
		}
		nRows := 0
		for _, id := range materials {
			if int(id)+1 > nRows {
				nRows = int(id) + 1
			}
		}

		values, err := parseTimeStepBlock(block, nRows, m.NumCells())
		if err != nil {
			return fmt.Errorf("time step %d: %w", step, err)
		}
		if err := m.AddFloatProperty(propName, mesh.CellData, values); err != nil {
			return err
		}

		out := fmt.Sprintf("%s%d.vtu", opts.OutBase, step)
		if !opts.Overwrite && opts.BaseMesh != "" {
			if _, err := os.Stat(out); err == nil {
				return fmt.Errorf("output file %s already exists, use --overwrite", out)
			}
		}
		fmt.Printf("Writing result #%d...\n", step)
		if err := vtu.Write(out, m); err != nil {
			return err
		}
	}
	return nil
}

// readTimeStepBlocks splits the csv file into runs of non-empty lines.
func readTimeStepBlocks(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var blocks [][]string
	var current []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks, nil
}

// parseTimeStepBlock turns one block of rows into a per-cell array in
// row-major order. Each row carries cells/rows values behind a label
// field.
func parseTimeStepBlock(block []string, nRows, nCells int) ([]float64, error) {
	if nRows <= 0 || nCells%nRows != 0 {
		return nil, fmt.Errorf("%d cells cannot be split into %d rows", nCells, nRows)
	}
	if len(block) != nRows {
		return nil, fmt.Errorf("%d data rows, want %d", len(block), nRows)
	}
	perRow := nCells / nRows

	values := make([]float64, nCells)
	for r, line := range block {
		fields := strings.Split(line, ",")
		if len(fields) != perRow+1 {
			return nil, fmt.Errorf("row %d has %d columns, want %d", r+1, len(fields), perRow+1)
		}
		for j, field := range fields[1:] {
			field = strings.TrimSpace(field)
			if field == "NaN" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r+1, err)
			}
			values[r*perRow+j] = v
		}
	}
	return values, nil
}

func init() {
	rootCmd.AddCommand(timeSeriesCmd)
	timeSeriesCmd.Flags().StringP("csv", "i", "", "csv file containing the scalar array time series")
	timeSeriesCmd.Flags().StringP("output", "t", "", "base name of the output files, e.g. 'output' writes output0.vtu, output1.vtu, ...")
	timeSeriesCmd.Flags().StringP("base", "b", "", "base mesh to create the time series from; omit if the series meshes already exist")
	timeSeriesCmd.Flags().Bool("overwrite", false, "overwrite existing output files")
}
