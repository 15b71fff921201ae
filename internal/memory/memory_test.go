package memory

import (
	"math/rand/v2"
	"testing"

	"github.com/Harshitk-cp/nars/internal/bag"
	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(capacity int) *Memory {
	return New(Options{
		Capacity: capacity,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	})
}

func inh(s, p string) domain.Term {
	return domain.NewStatement(domain.Atom(s), domain.Inheritance, domain.Atom(p)).Term()
}

func TestPeekConcept_IsMemoized(t *testing.T) {
	m := newTestMemory(100)

	c1 := m.PeekConcept(inh("robin", "bird"))
	c2 := m.PeekConcept(inh("robin", "bird"))

	assert.Same(t, c1, c2)
	assert.Equal(t, 3, m.Count(), "statement plus two atoms")
}

func TestPeekConcept_CreatesSubTermsBottomUp(t *testing.T) {
	m := newTestMemory(100)
	higher := domain.NewStatement(inh("a", "b"), domain.Implication, inh("c", "d")).Term()

	c := m.PeekConcept(higher)

	// <a-->b>, <c-->d>, a, b, c, d and the implication itself
	assert.Equal(t, 7, m.Count())
	require.Len(t, c.SubTermIDs(), 2)

	ab, ok := m.Lookup(inh("a", "b"))
	require.True(t, ok)
	assert.Contains(t, ab.SuperTermIDs(), c.ID())

	a, ok := m.Lookup(domain.Atom("a"))
	require.True(t, ok)
	assert.Contains(t, a.SuperTermIDs(), ab.ID())
}

func TestPeekConcept_SymmetricOrderIsOneConcept(t *testing.T) {
	m := newTestMemory(100)
	ab := domain.NewStatement(domain.Atom("a"), domain.Similarity, domain.Atom("b")).Term()
	ba := domain.NewStatement(domain.Atom("b"), domain.Similarity, domain.Atom("a")).Term()

	assert.Same(t, m.PeekConcept(ab), m.PeekConcept(ba))
}

func TestGetSemanticallyRelatedConcept(t *testing.T) {
	m := newTestMemory(100)
	robinBird := m.PeekConcept(inh("robin", "bird"))
	birdAnimal := m.PeekConcept(inh("bird", "animal"))
	m.PeekConcept(inh("cat", "mammal"))

	for i := 0; i < 50; i++ {
		got, ok := m.GetSemanticallyRelatedConcept(robinBird)
		if !ok {
			continue
		}
		assert.Same(t, birdAnimal, got, "only statements sharing a term are related")
	}
}

func TestGetSemanticallyRelatedConcept_NoneFound(t *testing.T) {
	m := newTestMemory(100)
	lonely := m.PeekConcept(inh("x", "y"))

	got, ok := m.GetSemanticallyRelatedConcept(lonely)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMemory_EvictionForgetsConcept(t *testing.T) {
	m := newTestMemory(3)

	first := m.PeekConcept(domain.Atom("a"))
	it := m.bag.TakeKey(first.ID())
	it.Budget = bag.NewBudget(0.01, 0.5, 0.5)
	m.Put(it)

	m.PeekConcept(domain.Atom("b"))
	m.PeekConcept(domain.Atom("c"))
	m.PeekConcept(domain.Atom("d"))

	assert.Equal(t, 3, m.Count())
	_, ok := m.Lookup(domain.Atom("a"))
	assert.False(t, ok, "lowest priority concept is evicted")

	again := m.PeekConcept(domain.Atom("a"))
	assert.NotEqual(t, first.ID(), again.ID())
}

func TestMemory_RecreatedComponentIsRelinked(t *testing.T) {
	m := newTestMemory(10)
	stmt := m.PeekConcept(inh("a", "b"))
	a, _ := m.Lookup(domain.Atom("a"))

	m.bag.TakeKey(a.ID())
	m.forget(a)
	assert.Len(t, stmt.SubTermIDs(), 1)

	a2 := m.PeekConcept(domain.Atom("a"))
	assert.Contains(t, a2.SuperTermIDs(), stmt.ID())
	assert.Len(t, stmt.SubTermIDs(), 2)
}

func TestMemory_TakeAndPut(t *testing.T) {
	m := newTestMemory(10)
	m.PeekConcept(domain.Atom("a"))

	it, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, "a", it.Object.String())
	m.Put(it)
	assert.Len(t, m.Top(5), 1)
}
