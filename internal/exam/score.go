package exam

import "math"

// Tier is a grade band derived from the final percentage.
type Tier int

const (
	TierKeepPracticing Tier = iota
	TierNotBad
	TierGood
	TierExcellent
)

// Label returns the scoreboard text for the tier.
func (t Tier) Label() string {
	switch t {
	case TierExcellent:
		return "Excellent!"
	case TierGood:
		return "Good Job!"
	case TierNotBad:
		return "Not Bad"
	default:
		return "Keep Practicing"
	}
}

// MarshalText encodes the tier as its label.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.Label()), nil
}

// Percentage returns score/total as a whole percentage, rounding halves up.
// An empty exam scores 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(score)*100/float64(total) + 0.5))
}

// TierFor maps a percentage onto the 90/70/50 thresholds.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 90:
		return TierExcellent
	case percentage >= 70:
		return TierGood
	case percentage >= 50:
		return TierNotBad
	default:
		return TierKeepPracticing
	}
}
