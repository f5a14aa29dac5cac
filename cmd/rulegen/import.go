package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/altiumtools/rulegen/pkg/config"
	"github.com/altiumtools/rulegen/pkg/pivot"
	"github.com/altiumtools/rulegen/pkg/rulfile"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/tabular"
	"github.com/altiumtools/rulegen/pkg/units"
)

var (
	importUnit         string
	importPrefix       string
	importShortCircuit bool
	importUnrouted     bool
)

var importCmd = &cobra.Command{
	Use:   "import <pivot.csv> <rules.RUL>",
	Short: "Convert a CSV clearance matrix to a rule file",
	Long: `Reads a CSV pivot table (first column net class row labels, header
row net class column labels, numeric clearances in the body) and
writes the equivalent clearance rules as a .RUL file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		settings, err := config.Load(config.DefaultPath())
		if err != nil {
			return err
		}

		unit := settings.Unit()
		if importUnit != "" {
			unit, err = units.Parse(importUnit)
			if err != nil {
				return err
			}
		}
		prefix := settings.RuleNamePrefix
		if importPrefix != "" {
			prefix = importPrefix
		}

		matrix, err := tabular.ReadFile(inputPath, unit)
		if err != nil {
			return err
		}

		clearances, err := pivot.ToClearanceRules(matrix, prefix)
		if err != nil {
			return err
		}

		coll := rules.NewCollection()
		for _, r := range clearances {
			coll.Add(r)
		}

		if importShortCircuit {
			shorts, err := pivot.ToShortCircuitRules(matrix, "")
			if err != nil {
				return err
			}
			for _, r := range shorts {
				coll.Add(r)
			}
		}
		if importUnrouted {
			unrouted, err := pivot.ToUnroutedNetRules(matrix, "")
			if err != nil {
				return err
			}
			for _, r := range unrouted {
				coll.Add(r)
			}
		}

		if err := rulfile.WriteFile(outputPath, coll); err != nil {
			return err
		}

		settings.AddRecentFile(outputPath)
		settings.LastDirectory = filepath.Dir(outputPath)
		if err := config.Save(config.DefaultPath(), settings); err != nil {
			// Settings are convenience state; the conversion already succeeded
			cmd.PrintErrf("warning: %v\n", err)
		}

		cmd.Printf("Wrote %d rules to %s\n", coll.Len(), outputPath)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importUnit, "unit", "u", "",
		"Unit of the matrix values (mil, mm, inch); defaults to the configured unit")
	importCmd.Flags().StringVarP(&importPrefix, "prefix", "p", "",
		"Prefix for generated rule names")
	importCmd.Flags().BoolVar(&importShortCircuit, "short-circuit", false,
		"Also generate a short circuit rule per net class")
	importCmd.Flags().BoolVar(&importUnrouted, "unrouted", false,
		"Also generate an unrouted net rule per net class")
}
