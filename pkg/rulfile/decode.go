package rulfile

import (
	"strconv"
	"strings"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/logging"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/scope"
	"github.com/altiumtools/rulegen/pkg/units"
)

var log = logging.GetLogger("rulfile")

// defaultClearance is substituted when a clearance value cannot be parsed
const defaultClearance = 10.0

// Parse parses canonical pipe-delimited content into a new collection.
// Lines that cannot be recognized are skipped with a logged warning.
// ok reports whether at least one rule was produced; callers decide
// whether partial success is acceptable.
func Parse(content string) (coll *rules.Collection, ok bool) {
	coll = rules.NewCollection()

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line == "" {
			continue
		}

		rule, err := ParseLine(line)
		if err != nil {
			log.Warn().Err(err).Int("line", i+1).Msg("Skipping unparsable rule line")
			continue
		}
		coll.Add(rule)
	}

	if coll.Len() == 0 {
		log.Warn().Msg("No rules recognized in input")
		return coll, false
	}

	log.Info().Int("rules", coll.Len()).Msg("Parsed rule content")
	return coll, true
}

// ParseLine parses a single pipe-delimited line into a rule
func ParseLine(line string) (rules.Rule, error) {
	fields := splitFields(line)

	name := fields[keyName]
	kind := fields[keyRuleKind]
	if name == "" || kind == "" {
		return nil, errors.New(errors.ErrMalformedRuleLine,
			"rule line missing NAME or RULEKIND")
	}

	switch rules.Kind(kind) {
	case rules.KindClearance:
		return parseClearance(name, fields)
	case rules.KindShortCircuit:
		rule, err := rules.NewShortCircuit(name, parseScope(fields[keyScope1]))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrMalformedRuleLine, "invalid short circuit rule")
		}
		applyCommon(rule.Attrs(), fields)
		return rule, nil
	case rules.KindUnroutedNet:
		rule, err := rules.NewUnroutedNet(name, parseScope(fields[keyScope1]))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrMalformedRuleLine, "invalid unrouted net rule")
		}
		applyCommon(rule.Attrs(), fields)
		return rule, nil
	default:
		return nil, errors.Newf(errors.ErrMalformedRuleLine,
			"unknown RULEKIND %q", kind)
	}
}

func parseClearance(name string, fields map[string]string) (rules.Rule, error) {
	gap := fields[keyGap]
	if gap == "" {
		gap = fields[keyGeneric]
	}
	value, unit := parseClearanceValue(gap)

	rule, err := rules.NewClearance(name, value, unit,
		parseScope(fields[keyScope1]), parseScope(fields[keyScope2]))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedRuleLine, "invalid clearance rule")
	}
	rule.IgnorePadToPad = parseBool(fields[keyIgnorePad], false)
	applyCommon(rule.Attrs(), fields)
	return rule, nil
}

// applyCommon fills the shared attributes, falling back to defaults on
// malformed values rather than failing the line
func applyCommon(attrs *rules.Attributes, fields map[string]string) {
	attrs.Enabled = parseBool(fields[keyEnabled], true)
	attrs.Comment = fields[keyComment]

	if p := fields[keyPriority]; p != "" {
		if n, err := strconv.Atoi(p); err == nil && n >= 1 {
			attrs.Priority = n
		} else {
			log.Warn().Str("priority", p).Msg("Invalid PRIORITY value, using 1")
		}
	}

	// Keep the persisted id when well-formed; otherwise the freshly
	// generated one from the constructor stands
	if id := fields[keyUniqueID]; id != "" {
		if rules.IsValidUniqueID(id) {
			attrs.UniqueID = id
		} else {
			log.Warn().Str("uniqueID", id).Msg("Malformed UNIQUEID, regenerating")
		}
	}
}

// splitFields splits a line on '|' then each field on the first '='.
// Fields without '=' are ignored.
func splitFields(line string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Split(line, fieldSeparator) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		fields[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return fields
}

// parseClearanceValue splits a "10mil"-style value into number and
// unit. Malformed input falls back to 10.0 in the declared (or mil)
// unit rather than failing the rule.
func parseClearanceValue(text string) (float64, units.Unit) {
	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn().Msg("Clearance value missing, using default")
		return defaultClearance, units.Mil
	}

	// Unit token is the trailing run of letters
	split := len(text)
	for split > 0 && isLetter(text[split-1]) {
		split--
	}
	numPart, unitPart := text[:split], text[split:]

	unit := units.Mil
	if unitPart != "" {
		parsed, err := units.Parse(unitPart)
		if err != nil {
			log.Warn().Str("value", text).Msg("Unknown clearance unit, using mil")
		} else {
			unit = parsed
		}
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil || value < 0 {
		log.Warn().Str("value", text).Float64("default", defaultClearance).
			Msg("Malformed clearance value, using default")
		return defaultClearance, unit
	}
	return value, unit
}

// parseScope interprets a scope field, falling back to All on text that
// cannot be interpreted at all (only blank text in practice)
func parseScope(text string) scope.Expression {
	expr, err := scope.Parse(text)
	if err != nil {
		log.Warn().Str("scope", text).Msg("Could not parse scope, using All")
		return scope.All()
	}
	return expr
}

func parseBool(text string, fallback bool) bool {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	default:
		return fallback
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
