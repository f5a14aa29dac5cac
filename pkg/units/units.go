// Package units defines the measurement units used by design rules and
// provides parsing and conversion between them.
package units

import (
	"strings"

	"github.com/altiumtools/rulegen/pkg/errors"
)

// Unit is a length unit used for clearance values
type Unit string

const (
	Mil  Unit = "mil"
	MM   Unit = "mm"
	Inch Unit = "inch"
)

// milsPerMM is derived from the exact definition 1 mil = 0.0254 mm
const milsPerMM = 39.37007874015748

// acceptedTokens lists every spelling Parse understands, for error messages
const acceptedTokens = "mil, mils, mm, millimeter, millimeters, inch, inches, in"

// Parse converts a unit string to a Unit. Matching is case-insensitive
// and ignores surrounding whitespace.
func Parse(text string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "mil", "mils":
		return Mil, nil
	case "mm", "millimeter", "millimeters":
		return MM, nil
	case "inch", "inches", "in":
		return Inch, nil
	default:
		return "", errors.Newf(errors.ErrInvalidUnit,
			"unknown unit %q (accepted: %s)", text, acceptedTokens)
	}
}

// Convert converts value between units using mils as the pivot.
// Converting a value to its own unit returns it unchanged.
func Convert(value float64, from, to Unit) float64 {
	if from == to {
		return value
	}

	var mils float64
	switch from {
	case MM:
		mils = value * milsPerMM
	case Inch:
		mils = value * 1000
	default:
		mils = value
	}

	switch to {
	case MM:
		return mils / milsPerMM
	case Inch:
		return mils / 1000
	default:
		return mils
	}
}

// Suffix returns the token appended to serialized clearance values, e.g. "10mil"
func (u Unit) Suffix() string {
	return string(u)
}

// String implements fmt.Stringer
func (u Unit) String() string {
	return string(u)
}
