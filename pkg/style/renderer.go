// Package style renders rule collections and pivot matrices for
// terminal display.
package style

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/pivot"
	"github.com/altiumtools/rulegen/pkg/rules"
)

// Renderer produces terminal output as strings; callers decide where
// to print them
type Renderer struct{}

// NewRenderer creates a terminal renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderRules renders a rule collection as a table in insertion order
func (r *Renderer) RenderRules(c *rules.Collection) string {
	if c.Len() == 0 {
		return pterm.ThemeDefault.SecondaryStyle.Sprint("No rules")
	}

	data := pterm.TableData{
		{"Name", "Kind", "Priority", "Enabled", "Detail"},
	}
	for _, rule := range c.Rules() {
		attrs := rule.Attrs()
		data = append(data, []string{
			attrs.Name,
			string(rule.Kind()),
			strconv.Itoa(attrs.Priority),
			enabledMark(attrs.Enabled),
			ruleDetail(rule),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Sprintf("%d rules", c.Len())
	}
	return out
}

// RenderMatrix renders a pivot matrix as a grid with its unit noted
func (r *Renderer) RenderMatrix(m *pivot.Matrix) string {
	if len(m.RowLabels) == 0 {
		return pterm.ThemeDefault.SecondaryStyle.Sprint("Empty matrix")
	}

	header := append([]string{"NetClass"}, m.ColumnLabels...)
	data := pterm.TableData{header}
	for i, rowLabel := range m.RowLabels {
		record := []string{rowLabel}
		for j := range m.ColumnLabels {
			if m.IsMissing(i, j) {
				record = append(record, "-")
			} else {
				record = append(record, strconv.FormatFloat(m.At(i, j), 'f', -1, 64))
			}
		}
		data = append(data, record)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Sprintf("%dx%d matrix", len(m.RowLabels), len(m.ColumnLabels))
	}
	return out + "\n" + pterm.ThemeDefault.SecondaryStyle.Sprintf("Values in %s", m.Unit)
}

// RenderError renders an error with its code when it carries one
func (r *Renderer) RenderError(err error) string {
	var rgErr *errors.RulegenError
	if stderrors.As(err, &rgErr) {
		return fmt.Sprintf("%s %s %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(rgErr.Code)),
			rgErr.Message)
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

func enabledMark(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}

// ruleDetail summarizes the kind-specific fields for display
func ruleDetail(rule rules.Rule) string {
	switch r := rule.(type) {
	case *rules.Clearance:
		return fmt.Sprintf("%s%s  %s -> %s",
			strconv.FormatFloat(r.MinClearance, 'f', -1, 64), r.Unit.Suffix(),
			r.Source.QueryString(), r.Target.QueryString())
	case *rules.ShortCircuit:
		return r.Scope.QueryString()
	case *rules.UnroutedNet:
		return r.Scope.QueryString()
	default:
		return ""
	}
}
