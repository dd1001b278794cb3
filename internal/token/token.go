package token

import (
	"ldscript/internal/source"
)

// Token represents a single script token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Is reports whether the token's value equals s.
// Quoted and bare tokens compare the same way: "(" in quotes is still "(".
func (t Token) Is(s string) bool { return t.Text == s }

// IsQuoted reports whether the token came from a double-quoted string.
func (t Token) IsQuoted() bool { return t.Kind == String }
