package domain

// Verdict classifies a truth value for answers.
type Verdict string

const (
	VerdictPositive  Verdict = "positive"
	VerdictNegative  Verdict = "negative"
	VerdictUncertain Verdict = "uncertain"
)

// Frequency thresholds above/below which a judgment reads as true/false.
const (
	PositiveThreshold = 2.0 / 3.0
	NegativeThreshold = 1.0 / 3.0
)

func ComputeVerdict(t TruthValue) Verdict {
	switch {
	case t.Frequency > PositiveThreshold:
		return VerdictPositive
	case t.Frequency < NegativeThreshold:
		return VerdictNegative
	default:
		return VerdictUncertain
	}
}

// Verdict reads the sentence's value; sentences without one are uncertain.
func (s *Sentence) Verdict() Verdict {
	if s.Value == nil {
		return VerdictUncertain
	}
	return ComputeVerdict(*s.Value)
}
