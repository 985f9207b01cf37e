package scheduling

import (
	"math/rand"

	"github.com/bowen700/fantasy-workplace/models"
)

// MinRepeatSeason re-pairs every regular-season week with a matching that
// minimizes repeated pairings across the whole span. Pair counts are
// rebuilt from scratch during the shuffle itself, not seeded from history.
// Each week admits only pairs at the lowest running count that still lets
// the whole roster pair up, backtracking when an early pick would strand
// the leftovers on more-used pairs; ties fall to roster iteration order.
//
// The backtracking search is exponential in the worst case but settles
// almost immediately at the roster sizes the slot capacity allows (small
// double digits).
func MinRepeatSeason(roster []*models.Competitor, weeks int) ([][]Pairing, error) {
	n := len(roster)
	if n < 2 {
		return nil, ErrRosterTooSmall
	}
	if n%2 != 0 {
		return nil, ErrOddRoster
	}
	if weeks < 1 {
		return nil, ErrInvalidWeek
	}

	ids := make([]int, n)
	for i, c := range roster {
		ids[i] = c.ID
	}

	counts := make(map[pairKey]int)
	season := make([][]Pairing, 0, weeks)

	for w := 0; w < weeks; w++ {
		var week []Pairing
		for limit := 0; ; limit++ {
			if m, ok := matchWithinLimit(ids, counts, limit); ok {
				week = m
				break
			}
		}
		for _, p := range week {
			counts[normalizePair(p.A, p.B)]++
		}
		season = append(season, week)
	}
	return season, nil
}

// matchWithinLimit pairs every remaining competitor using only pairs whose
// running count is at most limit. First-fit in roster order, backtracking
// when a branch cannot cover the rest of the roster.
func matchWithinLimit(remaining []int, counts map[pairKey]int, limit int) ([]Pairing, bool) {
	if len(remaining) == 0 {
		return nil, true
	}
	a, rest := remaining[0], remaining[1:]
	for i, b := range rest {
		if counts[normalizePair(a, b)] > limit {
			continue
		}
		next := make([]int, 0, len(rest)-1)
		next = append(next, rest[:i]...)
		next = append(next, rest[i+1:]...)
		if tail, ok := matchWithinLimit(next, counts, limit); ok {
			return append([]Pairing{{A: a, B: b}}, tail...), true
		}
	}
	return nil, false
}

// RandomPairings uniformly shuffles one week's existing participants into
// new pairs, with no history awareness. Exposed for ad hoc single-week
// fixes where determinism is not wanted.
func RandomPairings(competitorIDs []int, rng *rand.Rand) ([]Pairing, error) {
	n := len(competitorIDs)
	if n < 2 {
		return nil, ErrRosterTooSmall
	}
	if n%2 != 0 {
		return nil, ErrOddRoster
	}

	shuffled := make([]int, n)
	copy(shuffled, competitorIDs)
	rng.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pairings := make([]Pairing, 0, n/2)
	for i := 0; i < n; i += 2 {
		pairings = append(pairings, Pairing{A: shuffled[i], B: shuffled[i+1]})
	}
	return pairings, nil
}
