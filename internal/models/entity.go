package models

import "strings"

// Entity identifies which business entity a transaction belongs to.
// The values mirror the worksheet's Entity column, including the two
// sentinel values the bookkeeping team uses for unresolved rows.
type Entity string

const (
	EntityOrigin      Entity = "Origin"
	EntityOpenHaul    Entity = "OpenHaul"
	EntityPersonal    Entity = "Personal"
	EntitySplit       Entity = "SPLIT"
	EntityNeedsReview Entity = "NEEDS REVIEW"
)

// Entities lists all accepted entity values.
var Entities = []Entity{
	EntityOrigin,
	EntityOpenHaul,
	EntityPersonal,
	EntitySplit,
	EntityNeedsReview,
}

// IsValid reports whether e is one of the accepted entity values.
func (e Entity) IsValid() bool {
	for _, known := range Entities {
		if e == known {
			return true
		}
	}
	return false
}

// ParseEntity matches a raw string against the known entity values,
// ignoring case and surrounding whitespace. Returns false if no match.
func ParseEntity(s string) (Entity, bool) {
	trimmed := strings.TrimSpace(s)
	for _, known := range Entities {
		if strings.EqualFold(trimmed, string(known)) {
			return known, true
		}
	}
	return "", false
}

// NormalizeMerchant produces the stable join key between transactions and
// merchant rules: lower-cased and trimmed of surrounding whitespace.
func NormalizeMerchant(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
