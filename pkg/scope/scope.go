// Package scope models rule scope expressions: the predicate that
// selects which design objects a rule applies to. A scope is either
// All, one net class, an OR of several net classes, or an opaque
// query string passed through verbatim.
package scope

import (
	"strings"

	"github.com/altiumtools/rulegen/pkg/errors"
)

// Kind identifies the variant of a scope expression
type Kind string

const (
	KindAll        Kind = "All"
	KindNetClass   Kind = "NetClass"
	KindNetClasses Kind = "NetClasses"
	KindCustom     Kind = "Custom"
)

// Expression is a scope expression. The zero value is not valid; use
// the constructors.
type Expression struct {
	Kind Kind

	// Classes holds the net class names for KindNetClass (exactly one)
	// and KindNetClasses (one or more, OR-ed in order)
	Classes []string

	// Raw holds the verbatim query string for KindCustom
	Raw string
}

// All returns the scope matching every object
func All() Expression {
	return Expression{Kind: KindAll}
}

// NetClass returns a scope matching a single net class
func NetClass(name string) (Expression, error) {
	if strings.TrimSpace(name) == "" {
		return Expression{}, errors.New(errors.ErrInvalidScope, "net class name must not be empty")
	}
	return Expression{Kind: KindNetClass, Classes: []string{name}}, nil
}

// NetClasses returns a scope matching any of the given net classes, in order
func NetClasses(names []string) (Expression, error) {
	if len(names) == 0 {
		return Expression{}, errors.New(errors.ErrInvalidScope, "at least one net class is required")
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return Expression{}, errors.New(errors.ErrInvalidScope, "net class name must not be empty")
		}
	}
	classes := make([]string, len(names))
	copy(classes, names)
	return Expression{Kind: KindNetClasses, Classes: classes}, nil
}

// Custom returns a scope carrying an opaque, already-valid query string
func Custom(expr string) (Expression, error) {
	if strings.TrimSpace(expr) == "" {
		return Expression{}, errors.New(errors.ErrInvalidScope, "custom scope expression must not be empty")
	}
	return Expression{Kind: KindCustom, Raw: expr}, nil
}

// QueryString serializes the expression to the rule file query syntax
func (e Expression) QueryString() string {
	switch e.Kind {
	case KindNetClass:
		return "InNetClass('" + e.Classes[0] + "')"
	case KindNetClasses:
		parts := make([]string, len(e.Classes))
		for i, c := range e.Classes {
			parts[i] = "InNetClass('" + c + "')"
		}
		return strings.Join(parts, " OR ")
	case KindCustom:
		return e.Raw
	default:
		return "All"
	}
}

// String implements fmt.Stringer
func (e Expression) String() string {
	return e.QueryString()
}

// Parse interprets a query string as a scope expression. Empty text and
// "all" (any case) parse as All; InNetClass terms joined by " OR "
// parse structurally; anything else is passed through as Custom.
// Unrecognized text is never rejected, so hand-authored query strings
// round-trip byte-for-byte.
func Parse(text string) (Expression, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return All(), nil
	}

	if classes, ok := parseNetClassTerms(trimmed); ok {
		if len(classes) == 1 {
			return NetClass(classes[0])
		}
		return NetClasses(classes)
	}

	return Custom(text)
}

// parseNetClassTerms matches a chain of InNetClass('X') terms joined by
// the literal " OR ". It reports false if any term deviates from that
// shape, in which case the caller falls back to Custom.
func parseNetClassTerms(text string) ([]string, bool) {
	parts := strings.Split(text, " OR ")
	classes := make([]string, 0, len(parts))
	for _, part := range parts {
		name, ok := parseNetClassTerm(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		classes = append(classes, name)
	}
	return classes, true
}

func parseNetClassTerm(term string) (string, bool) {
	const prefix, suffix = "InNetClass('", "')"
	if !strings.HasPrefix(term, prefix) || !strings.HasSuffix(term, suffix) {
		return "", false
	}
	name := term[len(prefix) : len(term)-len(suffix)]
	if name == "" || strings.Contains(name, "'") {
		return "", false
	}
	return name, true
}
