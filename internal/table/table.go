// Package table implements the bounded, confidence-ordered sentence table kept
// by every concept.
package table

import (
	"fmt"
	"sort"

	"github.com/Harshitk-cp/nars/internal/domain"
)

const DefaultCapacity = 30

// Table keeps the most confident sentences of one punctuation. Entries are
// ordered by descending confidence; equal confidences keep insertion order.
type Table struct {
	punctuation domain.Punctuation
	capacity    int
	entries     []*domain.Sentence
}

func New(punctuation domain.Punctuation, capacity int) *Table {
	if !punctuation.HasValue() {
		panic(fmt.Sprintf("table: %s sentences carry no confidence", punctuation))
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{punctuation: punctuation, capacity: capacity}
}

func (t *Table) Punctuation() domain.Punctuation { return t.punctuation }
func (t *Table) Len() int                        { return len(t.entries) }
func (t *Table) Capacity() int                   { return t.capacity }

// Insert adds s and evicts the least confident entry on overflow. The evicted
// sentence is returned, or nil. Inserting a sentence of another punctuation
// panics.
func (t *Table) Insert(s *domain.Sentence) *domain.Sentence {
	if s.Punctuation != t.punctuation {
		panic(fmt.Sprintf("table: cannot insert %s into %s table", s.Punctuation, t.punctuation))
	}
	c := s.Confidence()
	// first index whose confidence is strictly lower
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Confidence() < c
	})
	t.entries = append(t.entries, nil)
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = s

	if len(t.entries) > t.capacity {
		return t.TakeMin()
	}
	return nil
}

// PeekMax returns the most confident sentence, or nil.
func (t *Table) PeekMax() *domain.Sentence {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[0]
}

// PeekMin returns the least confident sentence, or nil.
func (t *Table) PeekMin() *domain.Sentence {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

func (t *Table) TakeMax() *domain.Sentence {
	if len(t.entries) == 0 {
		return nil
	}
	s := t.entries[0]
	t.entries[0] = nil
	t.entries = t.entries[1:]
	return s
}

func (t *Table) TakeMin() *domain.Sentence {
	if len(t.entries) == 0 {
		return nil
	}
	last := len(t.entries) - 1
	s := t.entries[last]
	t.entries[last] = nil
	t.entries = t.entries[:last]
	return s
}

// Sentences returns the entries from most to least confident.
func (t *Table) Sentences() []*domain.Sentence {
	out := make([]*domain.Sentence, len(t.entries))
	copy(out, t.entries)
	return out
}
