package narsese

import (
	"fmt"

	"github.com/Harshitk-cp/nars/internal/domain"
)

// Format renders an input in the syntax Parse accepts.
func Format(in domain.Input) string {
	out := in.Statement.String() + in.Punctuation.Symbol()
	if in.Value != nil {
		out += " " + in.Value.String()
	}
	return out
}

// FormatTask renders a task the way output lines show it, prefixed with the
// rule that derived it.
func FormatTask(t *domain.Task) string {
	if t.IsFromInput {
		return t.Sentence.String()
	}
	return fmt.Sprintf("%s [%s]", t.Sentence, t.Derivation)
}
