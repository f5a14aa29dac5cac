package rulfile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/units"
)

// The legacy block format predates the pipe-delimited lines:
//
//	Rule
//	{
//	    Name = 'Clearance_A_to_B'
//	    RuleKind = 'Clearance'
//	    MinimumClearance = 10
//	    MinimumClearanceType = 'mil'
//	    SourceScope = InNetClass('A')
//	    TargetScope = InNetClass('B')
//	}
//
// It is kept as a separate, explicitly-named parser; nothing here is
// shared with the canonical line codec beyond the rule constructors.

var (
	legacyBlockPattern = regexp.MustCompile(`(?s)Rule\s*\{[^}]*\}`)
	legacyPropPattern  = regexp.MustCompile(`(?m)^\s*(\w+)\s*=\s*(.+?)\s*$`)
)

// ParseLegacy parses block-format content into a new collection with
// the same skip-and-warn policy as Parse. ok reports whether at least
// one rule was produced.
func ParseLegacy(content string) (*rules.Collection, bool) {
	coll := rules.NewCollection()

	blocks := legacyBlockPattern.FindAllString(content, -1)
	if len(blocks) == 0 {
		log.Warn().Msg("No rule blocks found in legacy content")
		return coll, false
	}

	for _, block := range blocks {
		rule := parseLegacyBlock(block)
		if rule != nil {
			coll.Add(rule)
		}
	}

	if coll.Len() == 0 {
		return coll, false
	}
	log.Info().Int("rules", coll.Len()).Int("blocks", len(blocks)).
		Msg("Parsed legacy rule content")
	return coll, true
}

func parseLegacyBlock(block string) rules.Rule {
	props := legacyProperties(block)

	name := props["Name"]
	kind := props["RuleKind"]
	if name == "" || kind == "" {
		log.Warn().Msg("Legacy rule block missing Name or RuleKind, skipping")
		return nil
	}

	var rule rules.Rule
	var err error
	switch rules.Kind(kind) {
	case rules.KindClearance:
		rule, err = parseLegacyClearance(name, props)
	case rules.KindShortCircuit:
		rule, err = rules.NewShortCircuit(name, parseScope(props["Scope"]))
	case rules.KindUnroutedNet:
		rule, err = rules.NewUnroutedNet(name, parseScope(props["Scope"]))
	default:
		log.Warn().Str("ruleKind", kind).Msg("Unsupported legacy rule kind, skipping")
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("rule", name).Msg("Invalid legacy rule block, skipping")
		return nil
	}

	attrs := rule.Attrs()
	attrs.Enabled = parseLegacyBool(props["Enabled"])
	attrs.Comment = props["Comment"]
	if p, convErr := strconv.Atoi(props["Priority"]); convErr == nil && p >= 1 {
		attrs.Priority = p
	}
	return rule
}

func parseLegacyClearance(name string, props map[string]string) (rules.Rule, error) {
	value := defaultClearance
	if v, err := strconv.ParseFloat(props["MinimumClearance"], 64); err == nil && v >= 0 {
		value = v
	} else {
		log.Warn().Str("value", props["MinimumClearance"]).
			Msg("Invalid MinimumClearance, using default")
	}

	unit := units.Mil
	if u := props["MinimumClearanceType"]; u != "" {
		parsed, err := units.Parse(u)
		if err != nil {
			log.Warn().Str("unit", u).Msg("Invalid MinimumClearanceType, using mil")
		} else {
			unit = parsed
		}
	}

	return rules.NewClearance(name, value, unit,
		parseScope(props["SourceScope"]), parseScope(props["TargetScope"]))
}

// legacyProperties extracts Key = Value pairs, stripping single or
// double quotes around values
func legacyProperties(block string) map[string]string {
	props := make(map[string]string)
	for _, m := range legacyPropPattern.FindAllStringSubmatch(block, -1) {
		props[m[1]] = strings.Trim(m[2], `'"`)
	}
	return props
}

// parseLegacyBool follows the original format's lowercase 'true'/'false'
// convention, defaulting to enabled
func parseLegacyBool(text string) bool {
	return !strings.EqualFold(strings.TrimSpace(text), "false")
}

// DetectLegacy reports whether content looks like the block format
// rather than the canonical line format
func DetectLegacy(content string) bool {
	return legacyBlockPattern.MatchString(content)
}
