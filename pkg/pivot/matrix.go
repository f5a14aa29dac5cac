// Package pivot converts between the spreadsheet-facing clearance
// matrix and lists of design rules. The matrix is keyed by net-class
// pairs; missing cells are NaN, never zero.
package pivot

import (
	"math"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/units"
)

// Matrix is a 2D table of clearance values keyed by net-class pair.
// Values[i][j] is the clearance between RowLabels[i] and
// ColumnLabels[j]; math.NaN() marks a missing entry.
type Matrix struct {
	RowLabels    []string
	ColumnLabels []string
	Values       [][]float64
	Unit         units.Unit
}

// New creates a matrix with every cell missing
func New(rowLabels, columnLabels []string, unit units.Unit) *Matrix {
	values := make([][]float64, len(rowLabels))
	for i := range values {
		row := make([]float64, len(columnLabels))
		for j := range row {
			row[j] = math.NaN()
		}
		values[i] = row
	}
	return &Matrix{
		RowLabels:    rowLabels,
		ColumnLabels: columnLabels,
		Values:       values,
		Unit:         unit,
	}
}

// NewWithValues creates a matrix from existing cell data. The value
// dimensions must exactly match the label counts.
func NewWithValues(rowLabels, columnLabels []string, values [][]float64, unit units.Unit) (*Matrix, error) {
	if len(values) != len(rowLabels) {
		return nil, errors.Newf(errors.ErrMatrixShape,
			"matrix has %d value rows for %d row labels", len(values), len(rowLabels))
	}
	for i, row := range values {
		if len(row) != len(columnLabels) {
			return nil, errors.Newf(errors.ErrMatrixShape,
				"matrix row %d has %d values for %d column labels", i, len(row), len(columnLabels))
		}
	}
	return &Matrix{
		RowLabels:    rowLabels,
		ColumnLabels: columnLabels,
		Values:       values,
		Unit:         unit,
	}, nil
}

// At returns the cell value; NaN means missing
func (m *Matrix) At(row, col int) float64 {
	return m.Values[row][col]
}

// Set assigns a cell value
func (m *Matrix) Set(row, col int, value float64) {
	m.Values[row][col] = value
}

// IsMissing reports whether the cell holds no value
func (m *Matrix) IsMissing(row, col int) bool {
	return math.IsNaN(m.Values[row][col])
}

// RowIndex returns the index of a row label, or -1
func (m *Matrix) RowIndex(label string) int {
	for i, l := range m.RowLabels {
		if l == label {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the index of a column label, or -1
func (m *Matrix) ColumnIndex(label string) int {
	for i, l := range m.ColumnLabels {
		if l == label {
			return i
		}
	}
	return -1
}
