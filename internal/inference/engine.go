// Package inference selects and fires the syllogistic rules for a pair of
// semantically related sentences.
package inference

import (
	"fmt"

	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/nal"
)

// Engine derives tasks from sentence pairs. It mints ids for every derived
// sentence; the sentence id doubles as the task id.
type Engine struct {
	truth  nal.Functions
	ids    *domain.IDSource
	limits domain.StampLimits
}

func New(truth nal.Functions, ids *domain.IDSource, limits domain.StampLimits) *Engine {
	return &Engine{truth: truth, ids: ids, limits: limits}
}

type truthFunc func(t1, t2 domain.TruthValue) domain.TruthValue

// conclusion is a derived statement before it is stamped.
type conclusion struct {
	statement  domain.Statement
	value      *domain.TruthValue
	derivation domain.Derivation
}

// DoInference applies every rule whose premise shape matches (j1, j2) and
// returns the derived tasks, followed by one conversion per derived
// inheritance statement. Pairs with shared evidence, pairs that already
// interacted, and tautological pairs yield nothing. A related pair that
// matches no rule is a dispatch defect and panics.
func (e *Engine) DoInference(j1, j2 *domain.Sentence, cycle uint64) []*domain.Task {
	checkPremise(j1)
	checkPremise(j2)

	if j1.HasEvidentialOverlap(j2) || j1.HasInteractedWith(j2) {
		return nil
	}

	s1, s2 := j1.Statement, j2.Statement
	if !s1.Copula.Symmetric() || !s2.Copula.Symmetric() {
		if !s1.Equal(s2) && sameTerms(s1, s2) {
			// S-->P with P-->S, or S-->P with S<->P
			return nil
		}
	}

	var conclusions []conclusion
	if s1.Equal(s2) {
		if j1.Punctuation == domain.Question || j2.Punctuation == domain.Question {
			return nil
		}
		conclusions = append(conclusions, conclusion{
			statement:  s1,
			value:      e.apply(e.truth.Revision, j1, j2),
			derivation: domain.Derivation{Rule: domain.RuleRevision},
		})
	} else {
		if s1.Copula.HigherOrder() != s2.Copula.HigherOrder() {
			return nil
		}
		conclusions = e.syllogisms(j1, j2)
	}

	tasks := make([]*domain.Task, 0, 2*len(conclusions))
	for _, c := range conclusions {
		if c.statement.Subject.Equal(c.statement.Predicate) {
			continue
		}
		tasks = append(tasks, e.newTask(c, cycle, j1, j2))
	}

	var conversions []*domain.Task
	for _, t := range tasks {
		if t.Sentence.Statement.Copula != domain.Inheritance {
			continue
		}
		conversions = append(conversions, e.newTask(e.convert(t.Sentence), cycle, t.Sentence, nil))
	}
	tasks = append(tasks, conversions...)

	j1.MarkInteracted(j2)
	return tasks
}

func (e *Engine) syllogisms(j1, j2 *domain.Sentence) []conclusion {
	s1, s2 := j1.Statement, j2.Statement
	sym1, sym2 := s1.Copula.Symmetric(), s2.Copula.Symmetric()
	f := e.truth

	switch {
	case !sym1 && !sym2:
		cop := s1.Copula
		symCop := cop.SymmetricForm()
		switch {
		case s1.Subject.Equal(s2.Predicate):
			// M-->P, S-->M
			return []conclusion{
				e.derive(s2.Subject, cop, s1.Predicate, f.Deduction, j1, j2, domain.RuleDeduction, false),
				e.derive(s1.Predicate, cop, s2.Subject, f.Exemplification, j2, j1, domain.RuleExemplification, true),
			}
		case s1.Subject.Equal(s2.Subject):
			// M-->P, M-->S
			return []conclusion{
				e.derive(s2.Predicate, cop, s1.Predicate, f.Induction, j1, j2, domain.RuleInduction, false),
				e.derive(s1.Predicate, cop, s2.Predicate, f.Induction, j2, j1, domain.RuleInduction, true),
				e.derive(s2.Predicate, symCop, s1.Predicate, f.Comparison, j1, j2, domain.RuleComparison, false),
			}
		case s1.Predicate.Equal(s2.Predicate):
			// P-->M, S-->M
			return []conclusion{
				e.derive(s2.Subject, cop, s1.Subject, f.Abduction, j1, j2, domain.RuleAbduction, false),
				e.derive(s1.Subject, cop, s2.Subject, f.Abduction, j2, j1, domain.RuleAbduction, true),
				e.derive(s2.Subject, symCop, s1.Subject, f.Comparison, j1, j2, domain.RuleComparison, false),
			}
		case s1.Predicate.Equal(s2.Subject):
			// P-->M, M-->S
			return []conclusion{
				e.derive(s2.Predicate, cop, s1.Subject, f.Exemplification, j1, j2, domain.RuleExemplification, false),
				e.derive(s1.Subject, cop, s2.Predicate, f.Deduction, j2, j1, domain.RuleDeduction, true),
			}
		}
	case !sym1 && sym2:
		// M-->P or P-->M, with S<->M
		if shared, other, ok := sharedTerm(s2, s1); ok {
			subject, predicate := replace(s1, shared, other)
			return []conclusion{e.derive(subject, s1.Copula, predicate, f.Analogy, j1, j2, domain.RuleAnalogy, false)}
		}
	case sym1 && !sym2:
		if shared, other, ok := sharedTerm(s1, s2); ok {
			subject, predicate := replace(s2, shared, other)
			return []conclusion{e.derive(subject, s2.Copula, predicate, f.Analogy, j2, j1, domain.RuleAnalogy, true)}
		}
	default:
		// M<->P, S<->M
		if shared, other2, ok := sharedTerm(s2, s1); ok {
			other1 := s1.Subject
			if other1.Equal(shared) {
				other1 = s1.Predicate
			}
			return []conclusion{e.derive(other2, s1.Copula, other1, f.Resemblance, j1, j2, domain.RuleResemblance, false)}
		}
	}

	panic(fmt.Sprintf("inference: no rule for related sentences %s and %s", j1, j2))
}

// derive builds a conclusion whose truth is fn applied to (first, second).
func (e *Engine) derive(subject domain.Term, cop domain.Copula, predicate domain.Term, fn truthFunc,
	first, second *domain.Sentence, rule domain.Rule, swapped bool) conclusion {
	return conclusion{
		statement:  domain.NewStatement(subject, cop, predicate),
		value:      e.apply(fn, first, second),
		derivation: domain.Derivation{Rule: rule, Swapped: swapped},
	}
}

// apply returns nil when either premise is a question; the conclusion is
// then a question too.
func (e *Engine) apply(fn truthFunc, first, second *domain.Sentence) *domain.TruthValue {
	if first.Value == nil || second.Value == nil {
		return nil
	}
	v := fn(*first.Value, *second.Value)
	return &v
}

func (e *Engine) convert(s *domain.Sentence) conclusion {
	c := conclusion{
		statement:  domain.NewStatement(s.Statement.Predicate, s.Statement.Copula, s.Statement.Subject),
		derivation: domain.Derivation{Rule: domain.RuleConversion},
	}
	if s.Value != nil {
		v := e.truth.Conversion(*s.Value)
		c.value = &v
	}
	return c
}

func (e *Engine) newTask(c conclusion, cycle uint64, parent1, parent2 *domain.Sentence) *domain.Task {
	punct := domain.Judgment
	if c.value == nil {
		punct = domain.Question
	}
	id := e.ids.Next()
	stamp := domain.NewDerivedStamp(cycle, e.limits, parent1, parent2)
	s := domain.NewSentence(id, c.statement, punct, c.value, stamp)
	return domain.NewDerivedTask(id, s, cycle, c.derivation)
}

func checkPremise(s *domain.Sentence) {
	if s == nil {
		panic("inference: nil premise")
	}
	if s.Punctuation != domain.Judgment && s.Punctuation != domain.Question {
		panic(fmt.Sprintf("inference: %s premise %s", s.Punctuation, s.Statement))
	}
}

// sameTerms reports whether both statements relate the same two terms, in
// either order.
func sameTerms(s1, s2 domain.Statement) bool {
	if s1.Subject.Equal(s2.Subject) && s1.Predicate.Equal(s2.Predicate) {
		return true
	}
	return s1.Subject.Equal(s2.Predicate) && s1.Predicate.Equal(s2.Subject)
}

// sharedTerm finds the term of sym that also occurs in other, and returns it
// together with sym's remaining term.
func sharedTerm(sym, other domain.Statement) (shared, rest domain.Term, ok bool) {
	switch {
	case sym.Subject.Equal(other.Subject) || sym.Subject.Equal(other.Predicate):
		return sym.Subject, sym.Predicate, true
	case sym.Predicate.Equal(other.Subject) || sym.Predicate.Equal(other.Predicate):
		return sym.Predicate, sym.Subject, true
	}
	return domain.Term{}, domain.Term{}, false
}

// replace substitutes with for the occurrence of shared in s.
func replace(s domain.Statement, shared, with domain.Term) (subject, predicate domain.Term) {
	if s.Subject.Equal(shared) {
		return with, s.Predicate
	}
	return s.Subject, with
}
