package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/nal"
)

var limits = domain.StampLimits{MaxEvidentialBase: 100, MaxInteracted: 100}

type fixture struct {
	engine *Engine
	ids    *domain.IDSource
}

func newFixture() *fixture {
	ids := &domain.IDSource{}
	return &fixture{engine: New(nal.New(nal.DefaultHorizon), ids, limits), ids: ids}
}

func (f *fixture) judgment(s, cop, p string, freq, conf float64) *domain.Sentence {
	id := f.ids.Next()
	v := domain.NewTruthValue(freq, conf)
	return domain.NewSentence(id, statement(s, cop, p), domain.Judgment, &v, domain.NewInputStamp(id, 0, limits))
}

func (f *fixture) question(s, cop, p string) *domain.Sentence {
	id := f.ids.Next()
	return domain.NewSentence(id, statement(s, cop, p), domain.Question, nil, domain.NewInputStamp(id, 0, limits))
}

func statement(s, cop, p string) domain.Statement {
	c, ok := domain.ParseCopula(cop)
	if !ok {
		panic("bad copula " + cop)
	}
	return domain.NewStatement(domain.Atom(s), c, domain.Atom(p))
}

func byRule(tasks []*domain.Task, rule domain.Rule) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if t.Derivation.Rule == rule {
			out = append(out, t)
		}
	}
	return out
}

func TestDoInference_Deduction(t *testing.T) {
	f := newFixture()
	ab := f.judgment("A", "-->", "B", 1, 0.9)
	bc := f.judgment("B", "-->", "C", 1, 0.9)

	tasks := f.engine.DoInference(ab, bc, 5)

	deductions := byRule(tasks, domain.RuleDeduction)
	require.Len(t, deductions, 1)
	d := deductions[0]
	assert.Equal(t, "<A --> C>", d.Sentence.Statement.Key())
	assert.True(t, d.Derivation.Swapped)
	assert.InDelta(t, 1.0, d.Sentence.Value.Frequency, 1e-9)
	assert.InDelta(t, 0.81, d.Sentence.Value.Confidence, 1e-9)
	assert.Equal(t, uint64(5), d.CreationCycle)
	assert.False(t, d.IsFromInput)
	assert.Equal(t, 2, d.Sentence.Stamp.EvidentialBase.Len())

	exemplifications := byRule(tasks, domain.RuleExemplification)
	require.Len(t, exemplifications, 1)
	assert.Equal(t, "<C --> A>", exemplifications[0].Sentence.Statement.Key())
}

func TestDoInference_OneConversionPerInheritanceResult(t *testing.T) {
	f := newFixture()
	ma := f.judgment("M", "-->", "P", 1, 0.9)
	ms := f.judgment("M", "-->", "S", 0.8, 0.9)

	tasks := f.engine.DoInference(ma, ms, 1)

	var inheritance int
	for _, task := range tasks {
		if task.Derivation.Rule != domain.RuleConversion &&
			task.Sentence.Statement.Copula == domain.Inheritance {
			inheritance++
		}
	}
	conversions := byRule(tasks, domain.RuleConversion)
	assert.Equal(t, 2, inheritance)
	assert.Len(t, conversions, inheritance)
	assert.Len(t, byRule(tasks, domain.RuleComparison), 1)

	for _, c := range conversions {
		assert.InDelta(t, 1.0, c.Sentence.Value.Frequency, 1e-9)
		assert.Less(t, c.Sentence.Value.Confidence, 0.5)
	}
}

func TestDoInference_Revision(t *testing.T) {
	f := newFixture()
	a := f.judgment("A", "-->", "B", 1, 0.9)
	b := f.judgment("A", "-->", "B", 1, 0.9)

	tasks := f.engine.DoInference(a, b, 3)

	require.Len(t, tasks, 2)
	rev := byRule(tasks, domain.RuleRevision)
	require.Len(t, rev, 1)
	assert.GreaterOrEqual(t, rev[0].Sentence.Value.Confidence, 0.9)
	assert.InDelta(t, 18.0/19.0, rev[0].Sentence.Value.Confidence, 1e-9)
	assert.Equal(t, 2, rev[0].Sentence.Stamp.EvidentialBase.Len())
	assert.Len(t, byRule(tasks, domain.RuleConversion), 1)
}

func TestDoInference_Refusals(t *testing.T) {
	tests := []struct {
		name string
		pair func(f *fixture) (*domain.Sentence, *domain.Sentence)
	}{
		{
			name: "overlapping evidence",
			pair: func(f *fixture) (*domain.Sentence, *domain.Sentence) {
				a := f.judgment("A", "-->", "B", 1, 0.9)
				b := f.judgment("B", "-->", "C", 1, 0.9)
				b.Stamp.EvidentialBase.Add(a.ID)
				return a, b
			},
		},
		{
			name: "swapped terms",
			pair: func(f *fixture) (*domain.Sentence, *domain.Sentence) {
				return f.judgment("A", "-->", "B", 1, 0.9), f.judgment("B", "-->", "A", 1, 0.9)
			},
		},
		{
			name: "same terms different copula",
			pair: func(f *fixture) (*domain.Sentence, *domain.Sentence) {
				return f.judgment("A", "-->", "B", 1, 0.9), f.judgment("A", "<->", "B", 1, 0.9)
			},
		},
		{
			name: "revision with a question",
			pair: func(f *fixture) (*domain.Sentence, *domain.Sentence) {
				return f.judgment("A", "-->", "B", 1, 0.9), f.question("A", "-->", "B")
			},
		},
		{
			name: "mixed order",
			pair: func(f *fixture) (*domain.Sentence, *domain.Sentence) {
				return f.judgment("A", "-->", "B", 1, 0.9), f.judgment("B", "==>", "C", 1, 0.9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			j1, j2 := tt.pair(f)
			assert.Empty(t, f.engine.DoInference(j1, j2, 1))
		})
	}
}

func TestDoInference_SecondCallIsEmpty(t *testing.T) {
	f := newFixture()
	ab := f.judgment("A", "-->", "B", 1, 0.9)
	bc := f.judgment("B", "-->", "C", 1, 0.9)

	require.NotEmpty(t, f.engine.DoInference(ab, bc, 1))
	assert.True(t, bc.HasInteractedWith(ab))
	assert.Empty(t, f.engine.DoInference(ab, bc, 2))
	assert.Empty(t, f.engine.DoInference(bc, ab, 2))
}

func TestDoInference_Analogy(t *testing.T) {
	f := newFixture()
	mp := f.judgment("M", "-->", "P", 1, 0.9)
	sm := f.judgment("S", "<->", "M", 1, 0.9)

	tasks := f.engine.DoInference(mp, sm, 1)

	analogies := byRule(tasks, domain.RuleAnalogy)
	require.Len(t, analogies, 1)
	assert.Equal(t, "<S --> P>", analogies[0].Sentence.Statement.Key())
	assert.False(t, analogies[0].Derivation.Swapped)
	assert.InDelta(t, 0.81, analogies[0].Sentence.Value.Confidence, 1e-9)

	f = newFixture()
	sm = f.judgment("S", "<->", "M", 1, 0.9)
	mp = f.judgment("M", "-->", "P", 1, 0.9)
	swapped := byRule(f.engine.DoInference(sm, mp, 1), domain.RuleAnalogy)
	require.Len(t, swapped, 1)
	assert.Equal(t, "<S --> P>", swapped[0].Sentence.Statement.Key())
	assert.True(t, swapped[0].Derivation.Swapped)
}

func TestDoInference_Resemblance(t *testing.T) {
	f := newFixture()
	mp := f.judgment("M", "<->", "P", 1, 0.9)
	sm := f.judgment("S", "<->", "M", 1, 0.9)

	tasks := f.engine.DoInference(mp, sm, 1)

	require.Len(t, tasks, 1)
	r := tasks[0]
	assert.Equal(t, domain.RuleResemblance, r.Derivation.Rule)
	assert.Equal(t, domain.NewStatement(domain.Atom("S"), domain.Similarity, domain.Atom("P")), r.Sentence.Statement)
	assert.InDelta(t, 0.81, r.Sentence.Value.Confidence, 1e-9)
}

func TestDoInference_HigherOrder(t *testing.T) {
	f := newFixture()
	ab := f.judgment("A", "==>", "B", 1, 0.9)
	bc := f.judgment("B", "==>", "C", 1, 0.9)

	tasks := f.engine.DoInference(ab, bc, 1)

	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, domain.Implication, task.Sentence.Statement.Copula)
	}
	assert.Empty(t, byRule(tasks, domain.RuleConversion))
}

func TestDoInference_QuestionDerivesQuestions(t *testing.T) {
	f := newFixture()
	q := f.question("A", "-->", "B")
	bc := f.judgment("B", "-->", "C", 1, 0.9)

	tasks := f.engine.DoInference(q, bc, 1)

	require.NotEmpty(t, tasks)
	for _, task := range tasks {
		assert.Equal(t, domain.Question, task.Sentence.Punctuation)
		assert.Nil(t, task.Sentence.Value)
	}
}

func TestDoInference_DropsSelfReference(t *testing.T) {
	f := newFixture()
	ab := f.judgment("A", "-->", "B", 1, 0.9)
	ca := f.judgment("C", "-->", "A", 1, 0.9)
	// A-->B with C-->A: no derivation relates a term to itself
	for _, task := range f.engine.DoInference(ab, ca, 1) {
		s := task.Sentence.Statement
		assert.False(t, s.Subject.Equal(s.Predicate), s.Key())
	}
}

func TestDoInference_UnrelatedPanics(t *testing.T) {
	f := newFixture()
	ab := f.judgment("A", "-->", "B", 1, 0.9)
	cd := f.judgment("C", "-->", "D", 1, 0.9)

	assert.Panics(t, func() { f.engine.DoInference(ab, cd, 1) })
}

func TestDoInference_GoalPremisePanics(t *testing.T) {
	f := newFixture()
	ab := f.judgment("A", "-->", "B", 1, 0.9)
	v := domain.NewTruthValue(1, 0.9)
	goal := domain.NewSentence(f.ids.Next(), statement("B", "-->", "C"), domain.Goal, &v,
		domain.NewInputStamp(99, 0, limits))

	assert.Panics(t, func() { f.engine.DoInference(ab, goal, 1) })
}
