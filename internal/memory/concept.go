package memory

import (
	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/table"
)

// Concept is the memory node named by a term. Relations to other concepts are
// kept as id lists into the owning Memory.
type Concept struct {
	id      uint64
	term    domain.Term
	Beliefs *table.Table
	Desires *table.Table

	subTerms   []uint64
	superTerms []uint64
}

func newConcept(id uint64, term domain.Term, tableCapacity int) *Concept {
	return &Concept{
		id:      id,
		term:    term,
		Beliefs: table.New(domain.Judgment, tableCapacity),
		Desires: table.New(domain.Goal, tableCapacity),
	}
}

// Key is the container key of the concept.
func (c *Concept) Key() uint64       { return c.id }
func (c *Concept) ID() uint64        { return c.id }
func (c *Concept) Term() domain.Term { return c.term }
func (c *Concept) String() string    { return c.term.String() }

// SubTermIDs lists the concepts of the term's immediate components.
func (c *Concept) SubTermIDs() []uint64 { return append([]uint64(nil), c.subTerms...) }

// SuperTermIDs lists the concepts whose terms have this term as a component.
func (c *Concept) SuperTermIDs() []uint64 { return append([]uint64(nil), c.superTerms...) }

// Table returns the belief or desire table for a valued punctuation.
func (c *Concept) Table(p domain.Punctuation) *table.Table {
	switch p {
	case domain.Judgment, domain.Question:
		return c.Beliefs
	case domain.Goal, domain.Quest:
		return c.Desires
	}
	return nil
}

func (c *Concept) addSuperTerm(id uint64) {
	for _, v := range c.superTerms {
		if v == id {
			return
		}
	}
	c.superTerms = append(c.superTerms, id)
}

func removeID(ids []uint64, id uint64) []uint64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
