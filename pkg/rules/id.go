package rules

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewUniqueID returns an opaque 8-hex-character rule identifier.
// This is the only non-deterministic operation in the core.
func NewUniqueID() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:4]))
}

// IsValidUniqueID reports whether s is a well-formed rule identifier
func IsValidUniqueID(s string) bool {
	if len(s) != 8 {
		return false
	}
	_, err := hex.DecodeString(strings.ToLower(s))
	return err == nil
}
