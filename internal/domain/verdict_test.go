package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeVerdict(t *testing.T) {
	tests := []struct {
		name      string
		frequency float64
		want      Verdict
	}{
		{"certain yes", 1, VerdictPositive},
		{"just above two thirds", 0.67, VerdictPositive},
		{"exactly two thirds", 2.0 / 3.0, VerdictUncertain},
		{"middle", 0.5, VerdictUncertain},
		{"exactly one third", 1.0 / 3.0, VerdictUncertain},
		{"certain no", 0, VerdictNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeVerdict(TruthValue{Frequency: tt.frequency, Confidence: 0.9}))
		})
	}
}

func TestSentenceVerdictWithoutValue(t *testing.T) {
	s := &Sentence{Punctuation: Question}
	assert.Equal(t, VerdictUncertain, s.Verdict())
}
