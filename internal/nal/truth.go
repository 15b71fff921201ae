// Package nal holds the truth functions of the syllogistic rules. Every
// function is pure: it takes the premises' truth values (first premise first)
// and returns the conclusion's truth value.
package nal

import "github.com/Harshitk-cp/nars/internal/domain"

// DefaultHorizon is the evidential horizon k.
const DefaultHorizon = 1.0

// Functions binds the truth functions to an evidential horizon.
type Functions struct {
	K float64
}

func New(k float64) Functions {
	if k <= 0 {
		k = DefaultHorizon
	}
	return Functions{K: k}
}

// Or is the bounded probabilistic sum 1-(1-a)(1-b).
func Or(vs ...float64) float64 {
	prod := 1.0
	for _, v := range vs {
		prod *= 1 - v
	}
	return 1 - prod
}

// And is the product of its arguments.
func And(vs ...float64) float64 {
	prod := 1.0
	for _, v := range vs {
		prod *= v
	}
	return prod
}

// W2C converts an amount of evidence to confidence.
func (f Functions) W2C(w float64) float64 {
	return w / (w + f.K)
}

// C2W converts confidence back to an amount of evidence.
func (f Functions) C2W(c float64) float64 {
	if c >= 1 {
		c = domain.MaxConfidence
	}
	return f.K * c / (1 - c)
}

// Revision pools the evidence of two judgments about the same statement.
func (f Functions) Revision(t1, t2 domain.TruthValue) domain.TruthValue {
	w1 := f.C2W(t1.Confidence)
	w2 := f.C2W(t2.Confidence)
	w := w1 + w2
	if w == 0 {
		return domain.NewTruthValue((t1.Frequency+t2.Frequency)/2, 0)
	}
	freq := (t1.Frequency*w1 + t2.Frequency*w2) / w
	return domain.NewTruthValue(freq, f.W2C(w))
}

// Deduction: {M-->P <t1>, S-->M <t2>} |- S-->P.
func (f Functions) Deduction(t1, t2 domain.TruthValue) domain.TruthValue {
	freq := And(t1.Frequency, t2.Frequency)
	return domain.NewTruthValue(freq, And(freq, t1.Confidence, t2.Confidence))
}

// Induction: {M-->P <t1>, M-->S <t2>} |- S-->P.
func (f Functions) Induction(t1, t2 domain.TruthValue) domain.TruthValue {
	return domain.NewTruthValue(t1.Frequency, f.W2C(And(t2.Frequency, t1.Confidence, t2.Confidence)))
}

// Abduction: {P-->M <t1>, S-->M <t2>} |- S-->P.
func (f Functions) Abduction(t1, t2 domain.TruthValue) domain.TruthValue {
	return domain.NewTruthValue(t2.Frequency, f.W2C(And(t1.Frequency, t1.Confidence, t2.Confidence)))
}

// Exemplification: {P-->M <t1>, M-->S <t2>} |- S-->P.
func (f Functions) Exemplification(t1, t2 domain.TruthValue) domain.TruthValue {
	return domain.NewTruthValue(1, f.W2C(And(t1.Frequency, t2.Frequency, t1.Confidence, t2.Confidence)))
}

// Comparison: {M-->P <t1>, M-->S <t2>} |- S<->P.
func (f Functions) Comparison(t1, t2 domain.TruthValue) domain.TruthValue {
	or := Or(t1.Frequency, t2.Frequency)
	freq := 0.0
	if or > 0 {
		freq = And(t1.Frequency, t2.Frequency) / or
	}
	return domain.NewTruthValue(freq, f.W2C(And(or, t1.Confidence, t2.Confidence)))
}

// Analogy: {M-->P <t1>, S<->M <t2>} |- S-->P.
func (f Functions) Analogy(t1, t2 domain.TruthValue) domain.TruthValue {
	return domain.NewTruthValue(And(t1.Frequency, t2.Frequency), And(t2.Frequency, t1.Confidence, t2.Confidence))
}

// Resemblance: {M<->P <t1>, S<->M <t2>} |- S<->P.
func (f Functions) Resemblance(t1, t2 domain.TruthValue) domain.TruthValue {
	return domain.NewTruthValue(
		And(t1.Frequency, t2.Frequency),
		And(Or(t1.Frequency, t2.Frequency), t1.Confidence, t2.Confidence),
	)
}

// Conversion: {P-->S <t>} |- S-->P.
func (f Functions) Conversion(t domain.TruthValue) domain.TruthValue {
	return domain.NewTruthValue(1, f.W2C(And(t.Frequency, t.Confidence)))
}
