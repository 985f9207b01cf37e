package scoring

// WeightedMinMax normalizes each competitor's raw value to [0,1] against
// the min and max submitted by all participants scheduled that week, then
// scales by the metric's share of total active weight times 100. Unlike
// the other strategies it needs the whole week's submissions (Input.
// WeekValues) before any single competitor can be scored.
type WeightedMinMax struct{}

func NewWeightedMinMax() *WeightedMinMax {
	return &WeightedMinMax{}
}

func (s *WeightedMinMax) Name() string { return StrategyWeightedMinMax }

func (s *WeightedMinMax) Score(in Input) float64 {
	totalWeight := 0.0
	for _, m := range in.Metrics {
		if m.Active && m.Weight > 0 {
			totalWeight += m.Weight
		}
	}
	if totalWeight == 0 {
		return 0
	}

	total := 0.0
	for _, m := range in.Metrics {
		if !m.Active || m.Weight <= 0 {
			continue
		}
		value, ok := in.Values[m.ID]
		if !ok {
			continue
		}

		lo, hi, any := minMax(in.WeekValues[m.ID])
		if !any {
			continue
		}

		// Midpoint when the whole field submitted the same value.
		norm := 0.5
		if hi > lo {
			norm = (value - lo) / (hi - lo)
		}
		total += norm * (m.Weight / totalWeight) * 100
	}
	return total
}

func minMax(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}
