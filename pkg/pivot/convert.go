package pivot

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/altiumtools/rulegen/pkg/logging"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/scope"
	"github.com/altiumtools/rulegen/pkg/units"
)

var log = logging.GetLogger("pivot")

// DefaultNamePrefix is prepended to generated clearance rule names
const DefaultNamePrefix = "Clearance_"

// ToClearanceRules converts every populated matrix cell to a clearance
// rule. Cells that are missing, zero or negative produce no rule;
// negative values are additionally logged. Priorities count up in
// row-major order starting at 1.
func ToClearanceRules(m *Matrix, namePrefix string) ([]*rules.Clearance, error) {
	if namePrefix == "" {
		namePrefix = DefaultNamePrefix
	}

	var out []*rules.Clearance
	priority := 1

	for rowIdx, rowLabel := range m.RowLabels {
		if strings.TrimSpace(rowLabel) == "" {
			log.Warn().Int("row", rowIdx).Msg("Skipping blank row label")
			continue
		}
		for colIdx, colLabel := range m.ColumnLabels {
			if strings.TrimSpace(colLabel) == "" {
				log.Warn().Int("column", colIdx).Msg("Skipping blank column label")
				continue
			}

			value := m.Values[rowIdx][colIdx]
			if math.IsNaN(value) || value == 0 {
				continue
			}
			if value < 0 {
				log.Warn().
					Str("row", rowLabel).
					Str("column", colLabel).
					Float64("value", value).
					Msg("Skipping negative clearance value")
				continue
			}

			source, err := scope.NetClass(rowLabel)
			if err != nil {
				return nil, err
			}
			target, err := scope.NetClass(colLabel)
			if err != nil {
				return nil, err
			}

			name := namePrefix + sanitizeName(rowLabel) + "_to_" + sanitizeName(colLabel)
			rule, err := rules.NewClearance(name, value, m.Unit, source, target)
			if err != nil {
				return nil, err
			}
			rule.Priority = priority
			rule.Comment = fmt.Sprintf("Clearance between NetClass '%s' and NetClass '%s'",
				rowLabel, colLabel)

			out = append(out, rule)
			priority++
		}
	}

	log.Info().Int("rules", len(out)).Msg("Created clearance rules from pivot matrix")
	return out, nil
}

// FromClearanceRules builds a square matrix over the sorted union of
// net-class names referenced by the rules. Rules whose source or
// target is not a single net class are ignored; this direction is
// lossy by design. The matrix unit comes from the first rule.
func FromClearanceRules(ruleList []*rules.Clearance) *Matrix {
	classSet := make(map[string]bool)
	for _, r := range ruleList {
		if name, ok := netClassName(r.Source); ok {
			classSet[name] = true
		}
		if name, ok := netClassName(r.Target); ok {
			classSet[name] = true
		}
	}

	classes := make([]string, 0, len(classSet))
	for name := range classSet {
		classes = append(classes, name)
	}
	sort.Strings(classes)

	unit := units.Mil
	if len(ruleList) > 0 {
		unit = ruleList[0].Unit
	}

	m := New(classes, classes, unit)
	for _, r := range ruleList {
		sourceName, sourceOK := netClassName(r.Source)
		targetName, targetOK := netClassName(r.Target)
		if !sourceOK || !targetOK {
			continue
		}
		row := m.RowIndex(sourceName)
		col := m.ColumnIndex(targetName)
		if row < 0 || col < 0 {
			continue
		}
		m.Values[row][col] = r.MinClearance
	}

	log.Info().
		Int("rules", len(ruleList)).
		Int("classes", len(classes)).
		Msg("Built pivot matrix from clearance rules")
	return m
}

// ToShortCircuitRules generates one short circuit rule per net class in
// the union of the matrix labels
func ToShortCircuitRules(m *Matrix, namePrefix string) ([]*rules.ShortCircuit, error) {
	if namePrefix == "" {
		namePrefix = "ShortCircuit_"
	}

	var out []*rules.ShortCircuit
	for _, class := range labelUnion(m) {
		s, err := scope.NetClass(class)
		if err != nil {
			return nil, err
		}
		rule, err := rules.NewShortCircuit(namePrefix+sanitizeName(class), s)
		if err != nil {
			return nil, err
		}
		rule.Comment = fmt.Sprintf("Short circuit rule for %s", class)
		out = append(out, rule)
	}
	return out, nil
}

// ToUnroutedNetRules generates one unrouted net rule per net class in
// the union of the matrix labels
func ToUnroutedNetRules(m *Matrix, namePrefix string) ([]*rules.UnroutedNet, error) {
	if namePrefix == "" {
		namePrefix = "UnroutedNet_"
	}

	var out []*rules.UnroutedNet
	for _, class := range labelUnion(m) {
		s, err := scope.NetClass(class)
		if err != nil {
			return nil, err
		}
		rule, err := rules.NewUnroutedNet(namePrefix+sanitizeName(class), s)
		if err != nil {
			return nil, err
		}
		rule.Comment = fmt.Sprintf("Unrouted net rule for %s", class)
		out = append(out, rule)
	}
	return out, nil
}

// netClassName extracts the single class name from a NetClass scope
func netClassName(e scope.Expression) (string, bool) {
	if e.Kind == scope.KindNetClass && len(e.Classes) == 1 {
		return e.Classes[0], true
	}
	return "", false
}

// labelUnion returns the sorted union of row and column labels,
// skipping blanks
func labelUnion(m *Matrix) []string {
	set := make(map[string]bool)
	for _, l := range m.RowLabels {
		if strings.TrimSpace(l) != "" {
			set[l] = true
		}
	}
	for _, l := range m.ColumnLabels {
		if strings.TrimSpace(l) != "" {
			set[l] = true
		}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// sanitizeName makes a label safe for use inside a rule name
func sanitizeName(label string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(label)
}
