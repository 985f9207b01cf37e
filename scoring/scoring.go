// Package scoring converts raw per-KPI submissions into comparable point
// totals. Three conversion strategies have shipped over the product's life;
// all of them implement the same Strategy contract and are selected by
// season or deployment configuration, never by feature flags inside the
// scoring code.
package scoring

import (
	"errors"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
)

const (
	StrategyFixedDivisor   = "fixed_divisor"
	StrategyFormula        = "formula"
	StrategyWeightedMinMax = "weighted_minmax"
)

var ErrUnknownStrategy = errors.New("unknown scoring strategy")

// Input carries everything a strategy may need to score one competitor's
// week. Values holds the competitor's own submissions; WeekValues holds
// every scheduled participant's submissions for the same week, which only
// the min-max strategy consumes.
type Input struct {
	Metrics    []*models.MetricDefinition
	Values     map[int]float64
	WeekValues map[int][]float64
}

// Strategy turns one competitor's weekly submissions into a point total.
// A competitor with no submission for a metric contributes zero for that
// metric under every strategy.
type Strategy interface {
	Name() string
	Score(in Input) float64
}

// New returns the strategy registered under the given name.
func New(name string) (Strategy, error) {
	switch name {
	case StrategyFixedDivisor:
		return NewFixedDivisor(), nil
	case StrategyFormula:
		return NewFormula(), nil
	case StrategyWeightedMinMax:
		return NewWeightedMinMax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
