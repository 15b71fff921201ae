package domain

import "fmt"

// Punctuation is the closed set of sentence variants.
type Punctuation uint8

const (
	Judgment Punctuation = iota + 1
	Question
	Goal
	Quest
)

func (p Punctuation) Symbol() string {
	switch p {
	case Judgment:
		return "."
	case Question:
		return "?"
	case Goal:
		return "!"
	case Quest:
		return "@"
	}
	return ""
}

func (p Punctuation) String() string {
	switch p {
	case Judgment:
		return "judgment"
	case Question:
		return "question"
	case Goal:
		return "goal"
	case Quest:
		return "quest"
	}
	return "unknown"
}

// HasValue reports whether sentences of this variant carry a truth or desire value.
func (p Punctuation) HasValue() bool {
	return p == Judgment || p == Goal
}

// ParsePunctuation resolves a punctuation symbol.
func ParsePunctuation(symbol string) (Punctuation, bool) {
	for _, p := range []Punctuation{Judgment, Question, Goal, Quest} {
		if p.Symbol() == symbol {
			return p, true
		}
	}
	return 0, false
}

// StampLimits bounds the provenance collections carried by every stamp.
type StampLimits struct {
	MaxEvidentialBase int
	MaxInteracted     int
}

// EvidentialBase is an ordered, capped set of provenance ids. The oldest id is
// dropped when the cap is exceeded.
type EvidentialBase struct {
	ids []uint64
	set map[uint64]struct{}
	max int
}

func NewEvidentialBase(max int, ids ...uint64) *EvidentialBase {
	b := &EvidentialBase{set: make(map[uint64]struct{}, len(ids)), max: max}
	for _, id := range ids {
		b.Add(id)
	}
	return b
}

func (b *EvidentialBase) Add(id uint64) {
	if _, ok := b.set[id]; ok {
		return
	}
	b.ids = append(b.ids, id)
	b.set[id] = struct{}{}
	if b.max > 0 && len(b.ids) > b.max {
		oldest := b.ids[0]
		b.ids = b.ids[1:]
		delete(b.set, oldest)
	}
}

// Merge appends every id of other that is not already present.
func (b *EvidentialBase) Merge(other *EvidentialBase) {
	if other == nil {
		return
	}
	for _, id := range other.ids {
		b.Add(id)
	}
}

func (b *EvidentialBase) Contains(id uint64) bool {
	_, ok := b.set[id]
	return ok
}

// Overlaps reports whether the two bases share any provenance id.
func (b *EvidentialBase) Overlaps(other *EvidentialBase) bool {
	if b == nil || other == nil {
		return false
	}
	small, large := b, other
	if len(small.ids) > len(large.ids) {
		small, large = large, small
	}
	for _, id := range small.ids {
		if _, ok := large.set[id]; ok {
			return true
		}
	}
	return false
}

func (b *EvidentialBase) Len() int { return len(b.ids) }

func (b *EvidentialBase) IDs() []uint64 {
	out := make([]uint64, len(b.ids))
	copy(out, b.ids)
	return out
}

// InteractionHistory records which sentences a sentence has already been
// combined with. Oldest entries are evicted first.
type InteractionHistory struct {
	order []uint64
	set   map[uint64]struct{}
	max   int
}

func NewInteractionHistory(max int) *InteractionHistory {
	return &InteractionHistory{set: make(map[uint64]struct{}), max: max}
}

func (h *InteractionHistory) Add(id uint64) {
	if _, ok := h.set[id]; ok {
		return
	}
	h.order = append(h.order, id)
	h.set[id] = struct{}{}
	if h.max > 0 && len(h.order) > h.max {
		oldest := h.order[0]
		h.order = h.order[1:]
		delete(h.set, oldest)
	}
}

func (h *InteractionHistory) Contains(id uint64) bool {
	_, ok := h.set[id]
	return ok
}

func (h *InteractionHistory) Len() int { return len(h.order) }

// Stamp is the per-sentence provenance metadata.
type Stamp struct {
	CreationCycle  uint64
	EvidentialBase *EvidentialBase
	Interacted     *InteractionHistory
}

// NewInputStamp starts a fresh evidential base holding only the sentence's own id.
func NewInputStamp(id, cycle uint64, limits StampLimits) Stamp {
	return Stamp{
		CreationCycle:  cycle,
		EvidentialBase: NewEvidentialBase(limits.MaxEvidentialBase, id),
		Interacted:     NewInteractionHistory(limits.MaxInteracted),
	}
}

// NewDerivedStamp merges the parents' evidential bases.
func NewDerivedStamp(cycle uint64, limits StampLimits, parents ...*Sentence) Stamp {
	st := Stamp{
		CreationCycle:  cycle,
		EvidentialBase: NewEvidentialBase(limits.MaxEvidentialBase),
		Interacted:     NewInteractionHistory(limits.MaxInteracted),
	}
	for _, p := range parents {
		if p != nil {
			st.EvidentialBase.Merge(p.Stamp.EvidentialBase)
		}
	}
	return st
}

// Sentence is a statement with a variant tag, an optional truth or desire value
// and a stamp.
type Sentence struct {
	ID          uint64
	Statement   Statement
	Punctuation Punctuation
	Value       *TruthValue
	Stamp       Stamp
}

// NewSentence panics when the value does not match the punctuation.
func NewSentence(id uint64, stmt Statement, punct Punctuation, value *TruthValue, stamp Stamp) *Sentence {
	if punct.HasValue() != (value != nil) {
		panic(fmt.Sprintf("domain: %s sentence %s with value %v", punct, stmt, value))
	}
	return &Sentence{ID: id, Statement: stmt, Punctuation: punct, Value: value, Stamp: stamp}
}

// Confidence of the truth or desire value. Panics for value-less variants.
func (s *Sentence) Confidence() float64 {
	if s.Value == nil {
		panic(fmt.Sprintf("domain: %s sentence %s has no confidence", s.Punctuation, s.Statement))
	}
	return s.Value.Confidence
}

// SameContent reports whether both sentences state the same thing in the same variant.
func (s *Sentence) SameContent(o *Sentence) bool {
	return s.Punctuation == o.Punctuation && s.Statement.Equal(o.Statement)
}

func (s *Sentence) HasEvidentialOverlap(o *Sentence) bool {
	return s.Stamp.EvidentialBase.Overlaps(o.Stamp.EvidentialBase)
}

func (s *Sentence) HasInteractedWith(o *Sentence) bool {
	return s.Stamp.Interacted.Contains(o.ID)
}

// MarkInteracted records the pair in both histories.
func (s *Sentence) MarkInteracted(o *Sentence) {
	s.Stamp.Interacted.Add(o.ID)
	o.Stamp.Interacted.Add(s.ID)
}

func (s *Sentence) String() string {
	out := s.Statement.String() + s.Punctuation.Symbol()
	if s.Value != nil {
		out += " " + s.Value.String()
	}
	return out
}
