package bench

// Config holds evaluation parameters.
type Config struct {
	Tolerance       int // byte distance at which a prediction still matches
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns the default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       3,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds boundary match counts and the scores derived from them.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Add returns the sum of the counts of m and o, rescored under cfg.
func (m Metrics) Add(o Metrics, cfg Config) Metrics {
	return Score(m.TruePositives+o.TruePositives, m.FalsePositives+o.FalsePositives, m.FalseNegatives+o.FalseNegatives, cfg)
}

// Score computes precision, recall, F1 and the weighted score from counts.
func Score(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if wp, wr := cfg.PrecisionWeight, cfg.RecallWeight; wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
	return m
}

// Evaluate matches predicted boundaries to truth greedily from the left.
// Each truth boundary matches at most one prediction within cfg.Tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0
	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			if abs(p-t) <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}
	return Score(tp, len(predicted)-tp, len(truth)-tp, cfg)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
