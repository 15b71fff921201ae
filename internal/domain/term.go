package domain

import "strings"

// TermKind distinguishes the closed set of term shapes.
type TermKind uint8

const (
	AtomicTerm TermKind = iota + 1
	VariableTerm
	StatementTerm
)

// VariableKind is the prefix symbol of a variable term.
type VariableKind byte

const (
	QueryVariable       VariableKind = '?'
	IndependentVariable VariableKind = '$'
	DependentVariable   VariableKind = '#'
)

// Term is an immutable atomic, variable or statement term. Two terms are equal
// when their canonical keys are equal.
type Term struct {
	kind      TermKind
	name      string
	varKind   VariableKind
	statement *Statement
	key       string
}

// Atom returns an atomic term.
func Atom(name string) Term {
	return Term{kind: AtomicTerm, name: name, key: name}
}

// Variable returns a variable term such as ?x or $y.
func Variable(kind VariableKind, name string) Term {
	return Term{kind: VariableTerm, name: name, varKind: kind, key: string(kind) + name}
}

func (t Term) Kind() TermKind { return t.kind }

// Key is the canonical string form, used as the concept key.
func (t Term) Key() string { return t.key }

func (t Term) String() string { return t.key }

func (t Term) IsZero() bool { return t.kind == 0 }

func (t Term) Equal(u Term) bool { return t.key == u.key }

// Statement returns the statement a statement term wraps.
func (t Term) Statement() (Statement, bool) {
	if t.kind != StatementTerm || t.statement == nil {
		return Statement{}, false
	}
	return *t.statement, true
}

// SubTerms returns the immediate components of a compound term.
func (t Term) SubTerms() []Term {
	if t.kind != StatementTerm {
		return nil
	}
	return []Term{t.statement.Subject, t.statement.Predicate}
}

func (t Term) ContainsVariable() bool {
	switch t.kind {
	case VariableTerm:
		return true
	case StatementTerm:
		return t.statement.Subject.ContainsVariable() || t.statement.Predicate.ContainsVariable()
	}
	return false
}

func (t Term) ContainsQueryVariable() bool {
	switch t.kind {
	case VariableTerm:
		return t.varKind == QueryVariable
	case StatementTerm:
		return t.statement.Subject.ContainsQueryVariable() || t.statement.Predicate.ContainsQueryVariable()
	}
	return false
}

// Copula is the relation of a statement.
type Copula uint8

const (
	Inheritance Copula = iota + 1
	Similarity
	Implication
	Equivalence
)

var copulaSymbols = map[Copula]string{
	Inheritance: "-->",
	Similarity:  "<->",
	Implication: "==>",
	Equivalence: "<=>",
}

func (c Copula) String() string {
	if s, ok := copulaSymbols[c]; ok {
		return s
	}
	return "?"
}

func (c Copula) Symmetric() bool {
	return c == Similarity || c == Equivalence
}

// HigherOrder reports whether the copula relates statements rather than terms.
func (c Copula) HigherOrder() bool {
	return c == Implication || c == Equivalence
}

// SymmetricForm maps an asymmetric copula to its symmetric partner of the same order.
func (c Copula) SymmetricForm() Copula {
	switch c {
	case Inheritance:
		return Similarity
	case Implication:
		return Equivalence
	}
	return c
}

// AsymmetricForm maps a symmetric copula to its asymmetric partner of the same order.
func (c Copula) AsymmetricForm() Copula {
	switch c {
	case Similarity:
		return Inheritance
	case Equivalence:
		return Implication
	}
	return c
}

// ParseCopula resolves a copula symbol.
func ParseCopula(symbol string) (Copula, bool) {
	for c, s := range copulaSymbols {
		if s == symbol {
			return c, true
		}
	}
	return 0, false
}

// Statement is a (subject, copula, predicate) triple. Symmetric statements are
// stored with their operands in key order so <A <-> B> equals <B <-> A>.
type Statement struct {
	Subject   Term
	Copula    Copula
	Predicate Term
}

func NewStatement(subject Term, copula Copula, predicate Term) Statement {
	if copula.Symmetric() && strings.Compare(predicate.key, subject.key) < 0 {
		subject, predicate = predicate, subject
	}
	return Statement{Subject: subject, Copula: copula, Predicate: predicate}
}

func (s Statement) Key() string {
	return "<" + s.Subject.key + " " + s.Copula.String() + " " + s.Predicate.key + ">"
}

func (s Statement) String() string { return s.Key() }

func (s Statement) Equal(o Statement) bool {
	return s.Copula == o.Copula && s.Subject.Equal(o.Subject) && s.Predicate.Equal(o.Predicate)
}

// Term wraps the statement as a compound term.
func (s Statement) Term() Term {
	st := s
	return Term{kind: StatementTerm, statement: &st, key: s.Key()}
}
