package main

import (
	"github.com/spf13/cobra"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/pivot"
	"github.com/altiumtools/rulegen/pkg/rulfile"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/tabular"
	"github.com/altiumtools/rulegen/pkg/units"
)

var exportUnit string

var exportCmd = &cobra.Command{
	Use:   "export <rules.RUL> <pivot.csv>",
	Short: "Convert the clearance rules of a rule file to a CSV matrix",
	Long: `Reads a .RUL file, collects its clearance rules, and writes the
net-class clearance matrix as CSV. Short circuit and unrouted net
rules have no matrix representation and are left out.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		coll, ok, err := readRuleFile(inputPath)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Newf(errors.ErrEmptyResult,
				"no rules recognized in %s", inputPath)
		}

		var clearances []*rules.Clearance
		for _, r := range coll.ByKind(rules.KindClearance) {
			clearances = append(clearances, r.(*rules.Clearance))
		}
		matrix := pivot.FromClearanceRules(clearances)

		if exportUnit != "" {
			target, err := units.Parse(exportUnit)
			if err != nil {
				return err
			}
			convertMatrixUnit(matrix, target)
		}

		if err := tabular.WriteFile(outputPath, matrix); err != nil {
			return err
		}

		cmd.Printf("Wrote %dx%d matrix (%s) to %s\n",
			len(matrix.RowLabels), len(matrix.ColumnLabels), matrix.Unit, outputPath)
		return nil
	},
}

// convertMatrixUnit rewrites every populated cell into the target unit
func convertMatrixUnit(m *pivot.Matrix, target units.Unit) {
	if m.Unit == target {
		return
	}
	for i := range m.RowLabels {
		for j := range m.ColumnLabels {
			if !m.IsMissing(i, j) {
				m.Set(i, j, units.Convert(m.At(i, j), m.Unit, target))
			}
		}
	}
	m.Unit = target
}

// readRuleFile reads a .RUL file, trying the legacy block format when
// the canonical line format yields nothing
func readRuleFile(path string) (*rules.Collection, bool, error) {
	coll, ok, err := rulfile.ReadFile(path)
	if err != nil || ok {
		return coll, ok, err
	}
	legacy, legacyOK, legacyErr := rulfile.ReadLegacyFile(path)
	if legacyErr == nil && legacyOK {
		return legacy, true, nil
	}
	return coll, ok, err
}

func init() {
	exportCmd.Flags().StringVarP(&exportUnit, "unit", "u", "",
		"Convert clearance values to this unit before export")
}
