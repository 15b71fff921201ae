package domain

import (
	"strconv"
	"sync/atomic"
)

// Rule names the inference rule that produced a derived task.
type Rule uint8

const (
	RuleNone Rule = iota
	RuleRevision
	RuleDeduction
	RuleInduction
	RuleAbduction
	RuleExemplification
	RuleComparison
	RuleAnalogy
	RuleResemblance
	RuleConversion
)

var ruleNames = [...]string{
	RuleNone:            "Input",
	RuleRevision:        "Revision",
	RuleDeduction:       "Deduction",
	RuleInduction:       "Induction",
	RuleAbduction:       "Abduction",
	RuleExemplification: "Exemplification",
	RuleComparison:      "Comparison",
	RuleAnalogy:         "Analogy",
	RuleResemblance:     "Resemblance",
	RuleConversion:      "Conversion",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "Rule(" + strconv.Itoa(int(r)) + ")"
}

// Derivation tags a task with the rule that produced it. Swapped is set when
// the truth function was applied to the premises in reverse order.
type Derivation struct {
	Rule    Rule
	Swapped bool
}

func (d Derivation) String() string {
	if d.Swapped {
		return "Swapped " + d.Rule.String()
	}
	return d.Rule.String()
}

// Task wraps a sentence with its processing state.
type Task struct {
	ID                     uint64
	Sentence               *Sentence
	CreationCycle          uint64
	IsFromInput            bool
	NeedsInitialProcessing bool
	NeedsAnswer            bool
	Derivation             Derivation
}

// Key is the container key of the task.
func (t *Task) Key() uint64 { return t.ID }

func (t *Task) String() string {
	return t.Sentence.String()
}

func NewInputTask(id uint64, s *Sentence, cycle uint64) *Task {
	return &Task{
		ID:                     id,
		Sentence:               s,
		CreationCycle:          cycle,
		IsFromInput:            true,
		NeedsInitialProcessing: true,
		NeedsAnswer:            s.Punctuation == Question || s.Punctuation == Quest,
	}
}

func NewDerivedTask(id uint64, s *Sentence, cycle uint64, d Derivation) *Task {
	return &Task{
		ID:                     id,
		Sentence:               s,
		CreationCycle:          cycle,
		NeedsInitialProcessing: true,
		Derivation:             d,
	}
}

// Input is an already-parsed sentence waiting to be admitted into the core.
type Input struct {
	Statement   Statement
	Punctuation Punctuation
	Value       *TruthValue
}

// IDSource mints monotonically increasing identifiers, starting at 1.
type IDSource struct {
	last atomic.Uint64
}

func (s *IDSource) Next() uint64 {
	return s.last.Add(1)
}
