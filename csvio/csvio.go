// Package csvio reads survey tables from character-separated text
// files. Columns are picked either by zero-based index or by header
// name; the first row is always treated as a header. A malformed row
// fails the whole read, there is no partial result.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ufz-vislab/EmiReader/geolib"
)

var ErrColumnNotFound = errors.New("column not found")

func readAll(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: no header row", path)
	}
	return records, nil
}

func headerIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func parseField(records [][]string, row, col int) (float64, error) {
	if col >= len(records[row]) {
		return 0, fmt.Errorf("row %d has %d fields, want column %d",
			row+1, len(records[row]), col)
	}
	v, err := strconv.ParseFloat(records[row][col], 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: %w", row+1, err)
	}
	return v, nil
}

// ReadPoints reads one point per data row, taking x and y from the
// given zero-based columns. zCol may be negative to read planar data
// with z fixed at 0.
func ReadPoints(path string, comma rune, xCol, yCol, zCol int) ([]geolib.Point, error) {
	records, err := readAll(path, comma)
	if err != nil {
		return nil, err
	}
	return readPointRows(path, records, xCol, yCol, zCol)
}

// ReadPointsNamed is ReadPoints with columns selected by header name.
// zName may be empty to read planar data with z fixed at 0.
func ReadPointsNamed(path string, comma rune, xName, yName, zName string) ([]geolib.Point, error) {
	records, err := readAll(path, comma)
	if err != nil {
		return nil, err
	}
	xCol, err := headerIndex(records[0], xName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	yCol, err := headerIndex(records[0], yName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	zCol := -1
	if zName != "" {
		if zCol, err = headerIndex(records[0], zName); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return readPointRows(path, records, xCol, yCol, zCol)
}

func readPointRows(path string, records [][]string, xCol, yCol, zCol int) ([]geolib.Point, error) {
	points := make([]geolib.Point, 0, len(records)-1)
	for row := 1; row < len(records); row++ {
		x, err := parseField(records, row, xCol)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		y, err := parseField(records, row, yCol)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		var z float64
		if zCol >= 0 {
			if z, err = parseField(records, row, zCol); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		points = append(points, geolib.Point{X: x, Y: y, Z: z})
	}
	return points, nil
}

// ReadColumn reads one numeric value per data row from the given
// zero-based column.
func ReadColumn(path string, comma rune, col int) ([]float64, error) {
	records, err := readAll(path, comma)
	if err != nil {
		return nil, err
	}
	return readColumnRows(path, records, col)
}

// ReadColumnNamed is ReadColumn with the column selected by header
// name.
func ReadColumnNamed(path string, comma rune, name string) ([]float64, error) {
	records, err := readAll(path, comma)
	if err != nil {
		return nil, err
	}
	col, err := headerIndex(records[0], name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return readColumnRows(path, records, col)
}

func readColumnRows(path string, records [][]string, col int) ([]float64, error) {
	values := make([]float64, 0, len(records)-1)
	for row := 1; row < len(records); row++ {
		v, err := parseField(records, row, col)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		values = append(values, v)
	}
	return values, nil
}
