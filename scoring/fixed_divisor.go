package scoring

// DefaultDivisors is the legacy per-metric-name divisor table. A metric
// whose name is missing here contributes zero under the fixed-divisor
// strategy; the table is also the fallback when a metric carries no
// conversion expression.
var DefaultDivisors = map[string]float64{
	"GrossProfit":    300,
	"Revenue":        1000,
	"CallsMade":      40,
	"MeetingsBooked": 5,
	"DealsWon":       2,
}

// FixedDivisor scores each active metric as raw value divided by a fixed
// per-metric-name divisor.
type FixedDivisor struct {
	Divisors map[string]float64
}

func NewFixedDivisor() *FixedDivisor {
	return &FixedDivisor{Divisors: DefaultDivisors}
}

func (s *FixedDivisor) Name() string { return StrategyFixedDivisor }

func (s *FixedDivisor) Score(in Input) float64 {
	total := 0.0
	for _, m := range in.Metrics {
		if !m.Active {
			continue
		}
		total += s.contribution(m.Name, in.Values, m.ID)
	}
	return total
}

func (s *FixedDivisor) contribution(metricName string, values map[int]float64, metricID int) float64 {
	value, ok := values[metricID]
	if !ok {
		return 0
	}
	divisor, ok := s.Divisors[metricName]
	if !ok || divisor == 0 {
		return 0
	}
	return value / divisor
}
