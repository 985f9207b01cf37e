package scheduling

import "errors"

var (
	ErrOddRoster      = errors.New("active roster has odd size, cannot pair")
	ErrRosterTooSmall = errors.New("not enough competitors to schedule (minimum 2 required)")
	ErrInvalidWeek    = errors.New("week number is outside the schedulable range")
)

// Pairing is one head-to-head assignment produced by a scheduler.
// A and B are competitor IDs; A != B always.
type Pairing struct {
	A int
	B int
}

// pairKey is an unordered competitor pair, usable as a map key.
type pairKey struct {
	lo, hi int
}

func normalizePair(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}
