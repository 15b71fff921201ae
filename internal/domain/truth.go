package domain

import "fmt"

// TruthValue is the (frequency, confidence) pair of a judgment.
// Confidence stays strictly below 1.
type TruthValue struct {
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

// DesireValue has the same shape as TruthValue and is carried by goals.
type DesireValue = TruthValue

// MaxConfidence is the ceiling applied to every confidence value.
const MaxConfidence = 0.99

func NewTruthValue(frequency, confidence float64) TruthValue {
	return TruthValue{
		Frequency:  clamp(frequency, 0, 1),
		Confidence: clamp(confidence, 0, MaxConfidence),
	}
}

// Expectation is c*(f-0.5)+0.5.
func (t TruthValue) Expectation() float64 {
	return t.Confidence*(t.Frequency-0.5) + 0.5
}

func (t TruthValue) String() string {
	return fmt.Sprintf("%%%.2f;%.2f%%", t.Frequency, t.Confidence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
