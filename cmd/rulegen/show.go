package main

import (
	"github.com/spf13/cobra"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/pivot"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/style"
)

var showAsMatrix bool

var showCmd = &cobra.Command{
	Use:   "show <rules.RUL>",
	Short: "Display the rules of a rule file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coll, ok, err := readRuleFile(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return errors.Newf(errors.ErrEmptyResult,
				"no rules recognized in %s", args[0])
		}

		renderer := style.NewRenderer()
		if showAsMatrix {
			var clearances []*rules.Clearance
			for _, r := range coll.ByKind(rules.KindClearance) {
				clearances = append(clearances, r.(*rules.Clearance))
			}
			cmd.Println(renderer.RenderMatrix(pivot.FromClearanceRules(clearances)))
			return nil
		}

		cmd.Println(renderer.RenderRules(coll))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVarP(&showAsMatrix, "matrix", "m", false,
		"Display clearance rules as a net-class matrix")
}
