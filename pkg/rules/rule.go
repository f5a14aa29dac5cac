// Package rules defines the closed set of design rule kinds and the
// ordered collection that holds them. Every rule shares a common
// Attributes block; kind-specific fields live on the concrete structs.
package rules

import (
	"strings"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/scope"
	"github.com/altiumtools/rulegen/pkg/units"
)

// Kind identifies a rule variant. The set is closed: the codec and the
// pivot converter switch exhaustively on it.
type Kind string

const (
	KindClearance    Kind = "Clearance"
	KindShortCircuit Kind = "ShortCircuit"
	KindUnroutedNet  Kind = "UnroutedNet"
)

// Attributes holds the metadata common to every rule kind
type Attributes struct {
	// Name identifies the rule. Uniqueness within a collection is not
	// enforced; lookups match the first rule with the name.
	Name string

	Enabled  bool
	Priority int
	Comment  string

	// UniqueID is an opaque 8-hex-character identifier assigned at
	// creation and stable for the rule's lifetime
	UniqueID string
}

// Rule is the interface implemented by all rule variants. The set of
// implementations is sealed to this package.
type Rule interface {
	Kind() Kind
	Attrs() *Attributes

	sealedRule()
}

// Clearance is a minimum-separation constraint between the objects
// matched by its source and target scopes
type Clearance struct {
	Attributes

	MinClearance float64
	Unit         units.Unit
	Source       scope.Expression
	Target       scope.Expression

	// IgnorePadToPad suppresses pad-to-pad checks within a footprint
	IgnorePadToPad bool
}

// ShortCircuit forbids short circuits between objects in its scope
type ShortCircuit struct {
	Attributes

	Scope scope.Expression
}

// UnroutedNet flags unrouted nets within its scope
type UnroutedNet struct {
	Attributes

	Scope scope.Expression
}

func (r *Clearance) Kind() Kind    { return KindClearance }
func (r *ShortCircuit) Kind() Kind { return KindShortCircuit }
func (r *UnroutedNet) Kind() Kind  { return KindUnroutedNet }

func (r *Clearance) Attrs() *Attributes    { return &r.Attributes }
func (r *ShortCircuit) Attrs() *Attributes { return &r.Attributes }
func (r *UnroutedNet) Attrs() *Attributes  { return &r.Attributes }

func (r *Clearance) sealedRule()    {}
func (r *ShortCircuit) sealedRule() {}
func (r *UnroutedNet) sealedRule()  {}

// newAttributes builds the common block with defaults applied
func newAttributes(name string) (Attributes, error) {
	if strings.TrimSpace(name) == "" {
		return Attributes{}, errors.New(errors.ErrRuleInvalid, "rule name must not be empty")
	}
	return Attributes{
		Name:     name,
		Enabled:  true,
		Priority: 1,
		UniqueID: NewUniqueID(),
	}, nil
}

// orAll substitutes All for an unset scope expression
func orAll(s scope.Expression) scope.Expression {
	if s.Kind == "" {
		return scope.All()
	}
	return s
}

// NewClearance creates a clearance rule. The zero Expression may be
// passed for either scope to default it to All.
func NewClearance(name string, minClearance float64, unit units.Unit, source, target scope.Expression) (*Clearance, error) {
	attrs, err := newAttributes(name)
	if err != nil {
		return nil, err
	}
	if minClearance < 0 {
		return nil, errors.Newf(errors.ErrRuleInvalid,
			"clearance must not be negative, got %v", minClearance)
	}
	return &Clearance{
		Attributes:   attrs,
		MinClearance: minClearance,
		Unit:         unit,
		Source:       orAll(source),
		Target:       orAll(target),
	}, nil
}

// NewShortCircuit creates a short circuit rule
func NewShortCircuit(name string, s scope.Expression) (*ShortCircuit, error) {
	attrs, err := newAttributes(name)
	if err != nil {
		return nil, err
	}
	return &ShortCircuit{Attributes: attrs, Scope: orAll(s)}, nil
}

// NewUnroutedNet creates an unrouted net rule
func NewUnroutedNet(name string, s scope.Expression) (*UnroutedNet, error) {
	attrs, err := newAttributes(name)
	if err != nil {
		return nil, err
	}
	return &UnroutedNet{Attributes: attrs, Scope: orAll(s)}, nil
}

// SetPriority validates and sets the display/processing order
func (a *Attributes) SetPriority(priority int) error {
	if priority < 1 {
		return errors.Newf(errors.ErrRuleInvalid, "priority must be >= 1, got %d", priority)
	}
	a.Priority = priority
	return nil
}
