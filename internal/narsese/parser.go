// Package narsese reads and writes the textual sentence format:
//
//	<robin --> bird>. %1.0;0.9%
//	<<$x --> bird> ==> <$x --> animal>>.
//	<?x --> animal>?
package narsese

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Harshitk-cp/nars/internal/domain"
)

var ErrSyntax = errors.New("narsese: syntax error")

// Default values for judgments and goals given without an explicit value.
var (
	DefaultJudgmentTruth = domain.NewTruthValue(1.0, 0.9)
	DefaultGoalDesire    = domain.NewTruthValue(1.0, 0.9)
)

// CommentPrefix marks lines ignored by input readers.
const CommentPrefix = "//"

// IsBlank reports whether line carries no sentence.
func IsBlank(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, CommentPrefix)
}

// Parse reads a single sentence.
func Parse(line string) (domain.Input, error) {
	p := &parser{src: line}
	p.skipSpace()

	stmt, err := p.statement()
	if err != nil {
		return domain.Input{}, err
	}

	p.skipSpace()
	if p.eof() {
		return domain.Input{}, p.errorf("missing punctuation")
	}
	punct, ok := domain.ParsePunctuation(string(p.src[p.pos]))
	if !ok {
		return domain.Input{}, p.errorf("unknown punctuation %q", p.src[p.pos])
	}
	p.pos++

	in := domain.Input{Statement: stmt, Punctuation: punct}
	p.skipSpace()
	if !p.eof() && p.peek() == '%' {
		if !punct.HasValue() {
			return domain.Input{}, p.errorf("%s cannot carry a truth value", punct)
		}
		tv, err := p.truth()
		if err != nil {
			return domain.Input{}, err
		}
		in.Value = &tv
	}
	p.skipSpace()
	if !p.eof() {
		return domain.Input{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}

	if in.Value == nil && punct.HasValue() {
		v := DefaultJudgmentTruth
		if punct == domain.Goal {
			v = DefaultGoalDesire
		}
		in.Value = &v
	}
	return in, nil
}

// ParseTerm reads a single term with nothing after it.
func ParseTerm(s string) (domain.Term, error) {
	p := &parser{src: s}
	p.skipSpace()
	t, err := p.term()
	if err != nil {
		return domain.Term{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return domain.Term{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	return t, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\r' || p.peek() == '\n') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) statement() (domain.Statement, error) {
	if p.eof() || p.peek() != '<' {
		return domain.Statement{}, p.errorf("expected '<'")
	}
	p.pos++
	p.skipSpace()

	subject, err := p.term()
	if err != nil {
		return domain.Statement{}, err
	}
	p.skipSpace()

	if p.pos+3 > len(p.src) {
		return domain.Statement{}, p.errorf("expected copula")
	}
	cop, ok := domain.ParseCopula(p.src[p.pos : p.pos+3])
	if !ok {
		return domain.Statement{}, p.errorf("unknown copula %q", p.src[p.pos:p.pos+3])
	}
	p.pos += 3
	p.skipSpace()

	predicate, err := p.term()
	if err != nil {
		return domain.Statement{}, err
	}
	p.skipSpace()

	if p.eof() || p.peek() != '>' {
		return domain.Statement{}, p.errorf("expected '>'")
	}
	p.pos++

	if cop.HigherOrder() && (!statementLike(subject) || !statementLike(predicate)) {
		return domain.Statement{}, p.errorf("%s relates statements, got %s and %s", cop, subject, predicate)
	}
	return domain.NewStatement(subject, cop, predicate), nil
}

func statementLike(t domain.Term) bool {
	return t.Kind() == domain.StatementTerm || t.Kind() == domain.VariableTerm
}

func (p *parser) term() (domain.Term, error) {
	if p.eof() {
		return domain.Term{}, p.errorf("expected term")
	}
	switch c := p.peek(); c {
	case '<':
		s, err := p.statement()
		if err != nil {
			return domain.Term{}, err
		}
		return s.Term(), nil
	case '?', '$', '#':
		p.pos++
		name := p.word()
		if name == "" && c != '?' {
			return domain.Term{}, p.errorf("variable %c needs a name", c)
		}
		return domain.Variable(domain.VariableKind(c), name), nil
	}
	name := p.word()
	if name == "" {
		return domain.Term{}, p.errorf("expected term, got %q", p.peek())
	}
	return domain.Atom(name), nil
}

func (p *parser) word() string {
	start := p.pos
	for !p.eof() {
		r := rune(p.peek())
		if p.peek() >= 0x80 || unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// truth reads %f% or %f;c%. A missing confidence takes the default.
func (p *parser) truth() (domain.TruthValue, error) {
	p.pos++ // %
	end := strings.IndexByte(p.src[p.pos:], '%')
	if end < 0 {
		return domain.TruthValue{}, p.errorf("unterminated truth value")
	}
	body := p.src[p.pos : p.pos+end]

	freqText, confText, hasConf := strings.Cut(body, ";")
	freq, err := parseUnit(freqText)
	if err != nil {
		return domain.TruthValue{}, p.errorf("frequency: %v", err)
	}
	conf := DefaultJudgmentTruth.Confidence
	if hasConf {
		if conf, err = parseUnit(confText); err != nil {
			return domain.TruthValue{}, p.errorf("confidence: %v", err)
		}
		if conf >= 1 {
			return domain.TruthValue{}, p.errorf("confidence must be below 1")
		}
	}

	p.pos += end + 1
	return domain.NewTruthValue(freq, conf), nil
}

func parseUnit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%g outside [0, 1]", v)
	}
	return v, nil
}
