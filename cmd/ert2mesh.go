package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ufz-vislab/EmiReader/csvio"
	"github.com/ufz-vislab/EmiReader/mesh"
	"github.com/ufz-vislab/EmiReader/mesh/vtu"
)

type ertOptions struct {
	CSVFile string
	MeshOut string
}

// ertCmd represents the ert2mesh command
var ertCmd = &cobra.Command{
	Use:   "ert2mesh",
	Short: "Converts a CSV file containing ERT data to a quad mesh",
	Long: `
Reads an ERT profile table with electrode positions (E1,N1,H1 and
E2,N2,H2 header columns) and measurement depths (z1/m, z2/m) and builds
one quad cell per row, spanning each electrode pair between the two
depths. A MaterialIDs cell array groups rows measured at the same upper
depth.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts ertOptions
		opts.CSVFile, _ = cmd.Flags().GetString("input")
		opts.MeshOut, _ = cmd.Flags().GetString("output")
		if opts.CSVFile == "" || opts.MeshOut == "" {
			fmt.Println("error: must supply an input CSV file (-i) and an output mesh file (-o)")
			os.Exit(1)
		}
		if err := runErt2Mesh(opts); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
	},
}

func runErt2Mesh(opts ertOptions) error {
	points1, err := csvio.ReadPointsNamed(opts.CSVFile, '\t', "E1", "N1", "H1")
	if err != nil {
		return err
	}
	points2, err := csvio.ReadPointsNamed(opts.CSVFile, '\t', "E2", "N2", "H2")
	if err != nil {
		return err
	}
	z1, err := csvio.ReadColumnNamed(opts.CSVFile, '\t', "z1/m")
	if err != nil {
		return err
	}
	z2, err := csvio.ReadColumnNamed(opts.CSVFile, '\t', "z2/m")
	if err != nil {
		return err
	}

	nQuads := len(points1)
	nodes := make([]mesh.Node, 0, 4*nQuads)
	quads := make([]mesh.Cell, 0, nQuads)
	materials := make([]int32, 0, nQuads)
	matID := int32(0)
	for i := 0; i < nQuads; i++ {
		base := len(nodes)
		nodes = append(nodes,
			mesh.Node{X: points1[i].X, Y: points1[i].Y, Z: points1[i].Z - z1[i]},
			mesh.Node{X: points1[i].X, Y: points1[i].Y, Z: points1[i].Z - z2[i]},
			mesh.Node{X: points2[i].X, Y: points2[i].Y, Z: points2[i].Z - z2[i]},
			mesh.Node{X: points2[i].X, Y: points2[i].Y, Z: points2[i].Z - z1[i]})
		if i > 0 && z1[i] != z1[i-1] {
			matID++
		}
		quads = append(quads, mesh.Cell{
			Type:  mesh.Quad,
			Nodes: []int{base, base + 1, base + 2, base + 3},
		})
		materials = append(materials, matID)
	}

	m, err := mesh.New("ERT Mesh", nodes, quads)
	if err != nil {
		return err
	}
	if err := m.AddIntProperty("MaterialIDs", mesh.CellData, materials); err != nil {
		return err
	}

	fmt.Println("Writing result...")
	return vtu.Write(opts.MeshOut, m)
}

func init() {
	rootCmd.AddCommand(ertCmd)
	ertCmd.Flags().StringP("input", "i", "", "CSV file containing ERT information")
	ertCmd.Flags().StringP("output", "o", "", "file name of the output mesh")
}
