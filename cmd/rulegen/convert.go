package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/units"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from-unit> <to-unit>",
	Short: "Convert a length value between mil, mm and inch",
	Example: `  rulegen convert 1000 mil inch
  rulegen convert 0.2 mm mil`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return errors.Newf(errors.ErrInvalidInput, "not a number: %q", args[0])
		}
		from, err := units.Parse(args[1])
		if err != nil {
			return err
		}
		to, err := units.Parse(args[2])
		if err != nil {
			return err
		}

		converted := units.Convert(value, from, to)
		cmd.Printf("%s%s = %s%s\n",
			strconv.FormatFloat(value, 'f', -1, 64), from.Suffix(),
			strconv.FormatFloat(converted, 'f', -1, 64), to.Suffix())
		return nil
	},
}
