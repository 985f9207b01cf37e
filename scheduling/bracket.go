package scheduling

import (
	"errors"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
)

// Playoff round offsets within the postseason.
const (
	RoundQuarterfinal = 1
	RoundSemifinal    = 2
	RoundFinal        = 3
)

// BracketSeeds is the number of competitors admitted to the playoffs.
// Seeds 1 and 2 receive a quarterfinal bye, so round one plays
// seed3-seed6 and seed4-seed5.
const BracketSeeds = 6

var ErrNotEnoughSeeds = errors.New("not enough ranked competitors to seed the bracket")

// PlayoffPairings emits the matchups for one playoff round.
//
// Seeds are the standings sorted by wins desc, points desc; only the top
// BracketSeeds entries are used, and only round-one seeding determines
// bracket position. Rounds two and three additionally need the prior
// round's matchups: when either prior matchup is missing a winner the
// round cannot be generated yet, and an empty (nil) pairing list is
// returned with no error. That is an expected transient state; the caller
// retries once the prior round is scored.
func PlayoffPairings(round int, seeds []models.StandingEntry, prior []*models.Matchup) ([]Pairing, error) {
	if len(seeds) < BracketSeeds {
		return nil, ErrNotEnoughSeeds
	}
	seeds = seeds[:BracketSeeds]

	switch round {
	case RoundQuarterfinal:
		return []Pairing{
			{A: seeds[2].CompetitorID, B: seeds[5].CompetitorID},
			{A: seeds[3].CompetitorID, B: seeds[4].CompetitorID},
		}, nil
	case RoundSemifinal:
		return semifinalPairings(seeds, prior)
	case RoundFinal:
		return finalPairing(prior)
	default:
		return nil, fmt.Errorf("%w: playoff round %d", ErrInvalidWeek, round)
	}
}

// semifinalPairings pairs the bye seeds against the quarterfinal winners:
// seed1 meets the winner of seed3-seed6, seed2 the winner of seed4-seed5.
func semifinalPairings(seeds []models.StandingEntry, quarterfinals []*models.Matchup) ([]Pairing, error) {
	upper := findWinner(quarterfinals, seeds[2].CompetitorID, seeds[5].CompetitorID)
	lower := findWinner(quarterfinals, seeds[3].CompetitorID, seeds[4].CompetitorID)
	if upper == nil || lower == nil {
		return nil, nil
	}
	return []Pairing{
		{A: seeds[0].CompetitorID, B: *upper},
		{A: seeds[1].CompetitorID, B: *lower},
	}, nil
}

// finalPairing pairs the two semifinal winners, in semifinal creation order.
func finalPairing(semifinals []*models.Matchup) ([]Pairing, error) {
	winners := make([]int, 0, 2)
	for _, m := range semifinals {
		if m.WinnerCompetitorID == nil {
			return nil, nil
		}
		winners = append(winners, *m.WinnerCompetitorID)
	}
	if len(winners) != 2 {
		return nil, nil
	}
	return []Pairing{{A: winners[0], B: winners[1]}}, nil
}

// findWinner locates the matchup between the two given competitors and
// returns its recorded winner, or nil when the matchup is absent or
// still unscored.
func findWinner(matchups []*models.Matchup, a, b int) *int {
	want := normalizePair(a, b)
	for _, m := range matchups {
		if normalizePair(m.ACompetitorID, m.BCompetitorID) == want {
			return m.WinnerCompetitorID
		}
	}
	return nil
}
