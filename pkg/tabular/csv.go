// Package tabular is the flat-file face of the pivot converter's
// tabular boundary: it reads and writes clearance matrices as CSV,
// with the first column holding row labels and the header row holding
// column labels.
package tabular

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/logging"
	"github.com/altiumtools/rulegen/pkg/pivot"
	"github.com/altiumtools/rulegen/pkg/units"
)

var log = logging.GetLogger("tabular")

// labelHeader titles the row-label column on export
const labelHeader = "NetClass"

// ReadFile reads a CSV pivot table. The header row supplies column
// labels (first cell is the row-label column title and is dropped);
// each following row starts with its row label. Blank or non-numeric
// body cells become missing values.
func ReadFile(path string, unit units.Unit) (*pivot.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "table file not found: %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrTabularImport, "failed to open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTabularImport, "failed to parse CSV %s", path)
	}

	m, err := fromRecords(records)
	if err != nil {
		return nil, err
	}
	m.Unit = unit

	log.Info().
		Str("path", path).
		Int("rows", len(m.RowLabels)).
		Int("columns", len(m.ColumnLabels)).
		Msg("Imported pivot table")
	return m, nil
}

// fromRecords converts raw CSV records to a matrix
func fromRecords(records [][]string) (*pivot.Matrix, error) {
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, errors.New(errors.ErrTabularImport,
			"table is too small to be a valid pivot table")
	}

	columnLabels := make([]string, len(records[0])-1)
	for i, label := range records[0][1:] {
		columnLabels[i] = strings.TrimSpace(label)
	}

	rowLabels := make([]string, 0, len(records)-1)
	values := make([][]float64, 0, len(records)-1)

	for rowNum, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, errors.Newf(errors.ErrTabularImport,
				"row %d has %d cells, expected %d", rowNum+2, len(record), len(records[0]))
		}

		rowLabels = append(rowLabels, strings.TrimSpace(record[0]))
		row := make([]float64, len(columnLabels))
		for i, cell := range record[1:] {
			row[i] = parseCell(cell, rowNum+2)
		}
		values = append(values, row)
	}

	return pivot.NewWithValues(rowLabels, columnLabels, values, units.Mil)
}

// parseCell interprets a body cell; blank and non-numeric cells are missing
func parseCell(cell string, rowNum int) float64 {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		log.Warn().Str("cell", cell).Int("row", rowNum).
			Msg("Non-numeric cell treated as missing")
		return math.NaN()
	}
	return value
}

// WriteFile exports a matrix as CSV in the same shape ReadFile accepts
func WriteFile(path string, m *pivot.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTabularExport, "failed to create %s", path)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := append([]string{labelHeader}, m.ColumnLabels...)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, errors.ErrTabularExport, "failed to write header")
	}

	for i, rowLabel := range m.RowLabels {
		record := make([]string, 0, len(m.ColumnLabels)+1)
		record = append(record, rowLabel)
		for j := range m.ColumnLabels {
			if m.IsMissing(i, j) {
				record = append(record, "")
			} else {
				record = append(record, strconv.FormatFloat(m.At(i, j), 'f', -1, 64))
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, errors.ErrTabularExport, "failed to write row %d", i+2)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, errors.ErrTabularExport, "failed to flush %s", path)
	}

	log.Info().Str("path", path).Int("rows", len(m.RowLabels)).Msg("Exported pivot table")
	return nil
}
