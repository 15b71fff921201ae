package table

import (
	"testing"

	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limits = domain.StampLimits{MaxEvidentialBase: 10, MaxInteracted: 10}

func judgment(id uint64, conf float64) *domain.Sentence {
	stmt := domain.NewStatement(domain.Atom("a"), domain.Inheritance, domain.Atom("b"))
	tv := domain.NewTruthValue(1, conf)
	return domain.NewSentence(id, stmt, domain.Judgment, &tv, domain.NewInputStamp(id, 0, limits))
}

func TestTable_EmptyPeeks(t *testing.T) {
	tb := New(domain.Judgment, 3)
	assert.Nil(t, tb.PeekMax())
	assert.Nil(t, tb.PeekMin())
	assert.Nil(t, tb.TakeMax())
	assert.Nil(t, tb.TakeMin())
}

func TestTable_PeekMaxMin(t *testing.T) {
	tb := New(domain.Judgment, 10)
	for i, c := range []float64{0.5, 0.9, 0.1, 0.7} {
		tb.Insert(judgment(uint64(i+1), c))
	}

	require.Equal(t, 4, tb.Len())
	assert.InDelta(t, 0.9, tb.PeekMax().Confidence(), 1e-9)
	assert.InDelta(t, 0.1, tb.PeekMin().Confidence(), 1e-9)
	assert.Equal(t, 4, tb.Len(), "peeks do not mutate")

	assert.InDelta(t, 0.9, tb.TakeMax().Confidence(), 1e-9)
	assert.InDelta(t, 0.1, tb.TakeMin().Confidence(), 1e-9)
	assert.Equal(t, 2, tb.Len())
}

func TestTable_OverflowEvictsMinimum(t *testing.T) {
	const capacity = 5
	tb := New(domain.Judgment, capacity)
	confs := []float64{0.6, 0.3, 0.8, 0.5, 0.7, 0.4}

	var evicted *domain.Sentence
	for i, c := range confs {
		if e := tb.Insert(judgment(uint64(i+1), c)); e != nil {
			evicted = e
		}
	}

	require.NotNil(t, evicted)
	assert.Equal(t, capacity, tb.Len())
	assert.InDelta(t, 0.3, evicted.Confidence(), 1e-9)
	for _, s := range tb.Sentences() {
		assert.GreaterOrEqual(t, s.Confidence(), evicted.Confidence())
	}
}

func TestTable_EqualConfidenceKeepsInsertionOrder(t *testing.T) {
	tb := New(domain.Judgment, 10)
	tb.Insert(judgment(1, 0.5))
	tb.Insert(judgment(2, 0.5))
	tb.Insert(judgment(3, 0.5))

	got := tb.Sentences()
	require.Len(t, got, 3)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(3), got[2].ID)
}

func TestTable_WrongPunctuationPanics(t *testing.T) {
	tb := New(domain.Goal, 10)
	assert.Panics(t, func() { tb.Insert(judgment(1, 0.9)) })
}

func TestTable_ValuelessPunctuationPanics(t *testing.T) {
	assert.Panics(t, func() { New(domain.Question, 10) })
}
