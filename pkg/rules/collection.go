package rules

import (
	"github.com/altiumtools/rulegen/pkg/logging"
)

// Collection is an ordered, mutable list of rules. Insertion order is
// preserved; no implicit sorting happens. Collections own their rules
// exclusively once added.
type Collection struct {
	rules []Rule
}

// NewCollection creates an empty rule collection
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a rule. Duplicate names are not checked; callers that
// need unique names must enforce that themselves.
func (c *Collection) Add(r Rule) {
	c.rules = append(c.rules, r)

	log := logging.GetLogger("rules")
	log.Debug().
		Str("rule", r.Attrs().Name).
		Str("kind", string(r.Kind())).
		Msg("Added rule to collection")
}

// AddAll appends multiple rules in order
func (c *Collection) AddAll(rs []Rule) {
	for _, r := range rs {
		c.Add(r)
	}
}

// Len returns the number of rules
func (c *Collection) Len() int {
	return len(c.rules)
}

// Rules returns the rules in insertion order. The returned slice is a
// copy; the rules themselves are shared.
func (c *Collection) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// ByKind returns all rules of the given kind in insertion order
func (c *Collection) ByKind(kind Kind) []Rule {
	var out []Rule
	for _, r := range c.rules {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// FindByName returns the first rule with the given name, or nil
func (c *Collection) FindByName(name string) Rule {
	for _, r := range c.rules {
		if r.Attrs().Name == name {
			return r
		}
	}
	return nil
}

// RemoveByName removes the first rule with an exact name match and
// reports whether anything was removed
func (c *Collection) RemoveByName(name string) bool {
	for i, r := range c.rules {
		if r.Attrs().Name == name {
			c.rules = append(c.rules[:i], c.rules[i+1:]...)

			log := logging.GetLogger("rules")
			log.Debug().
				Str("rule", name).
				Str("kind", string(r.Kind())).
				Msg("Removed rule from collection")
			return true
		}
	}
	return false
}

// Clear removes all rules
func (c *Collection) Clear() {
	c.rules = nil
}
