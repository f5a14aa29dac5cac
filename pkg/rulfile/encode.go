package rulfile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/units"
)

// Field keys of the pipe-delimited rule format
const (
	keyName      = "NAME"
	keyEnabled   = "ENABLED"
	keyPriority  = "PRIORITY"
	keyComment   = "COMMENT"
	keyRuleKind  = "RULEKIND"
	keyUniqueID  = "UNIQUEID"
	keyScope1    = "SCOPE1EXPRESSION"
	keyScope2    = "SCOPE2EXPRESSION"
	keyGap       = "GAP"
	keyGeneric   = "GENERICCLEARANCE"
	keyIgnorePad = "IGNOREPADTOPADCLEARANCEINFOOTPRINT"
	keyAllowed   = "ALLOWED"
	keyCheckBad  = "CHECKBADCONNECTIONS"

	keySelection  = "SELECTION"
	keyLocked     = "LOCKED"
	keyKeepout    = "KEEPOUT"
	keyLogicalDoc = "DEFINEDBYLOGICALDOCUMENT"
)

const fieldSeparator = "|"

// Marshal serializes a single rule to one line of the canonical format.
// Empty-valued fields are omitted; fields are ordered alphabetically by key.
func Marshal(r rules.Rule) string {
	fields := commonFields(r)

	switch rule := r.(type) {
	case *rules.Clearance:
		gap := formatClearance(rule.MinClearance, rule.Unit)
		fields[keyGap] = gap
		fields[keyGeneric] = gap
		fields[keyIgnorePad] = formatBool(rule.IgnorePadToPad)
		fields[keyScope1] = rule.Source.QueryString()
		fields[keyScope2] = rule.Target.QueryString()
	case *rules.ShortCircuit:
		fields[keyAllowed] = "FALSE"
		fields[keyScope1] = rule.Scope.QueryString()
		fields[keyScope2] = rule.Scope.QueryString()
	case *rules.UnroutedNet:
		fields[keyCheckBad] = "TRUE"
		fields[keyScope1] = rule.Scope.QueryString()
	}

	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+fields[k])
	}
	return strings.Join(parts, fieldSeparator)
}

// MarshalCollection serializes every rule in order, one line per rule,
// joined with the platform line separator. No header or footer.
func MarshalCollection(c *rules.Collection) string {
	lines := make([]string, 0, c.Len())
	for _, r := range c.Rules() {
		lines = append(lines, Marshal(r))
	}
	return strings.Join(lines, lineSeparator)
}

// commonFields builds the fields shared by every rule kind, including
// the constant cosmetic defaults the target tool expects on each line
func commonFields(r rules.Rule) map[string]string {
	attrs := r.Attrs()
	return map[string]string{
		keyName:       attrs.Name,
		keyEnabled:    formatBool(attrs.Enabled),
		keyPriority:   strconv.Itoa(attrs.Priority),
		keyComment:    attrs.Comment,
		keyRuleKind:   string(r.Kind()),
		keyUniqueID:   attrs.UniqueID,
		keySelection:  "FALSE",
		keyLocked:     "FALSE",
		keyKeepout:    "FALSE",
		keyLogicalDoc: "FALSE",
	}
}

// formatClearance renders a clearance value with its unit suffix and no
// separator, e.g. "10mil" or "0.2mm"
func formatClearance(value float64, unit units.Unit) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + unit.Suffix()
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
