package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ldscript/internal/source"
	"ldscript/internal/token"
)

// CheckTokenInvariants checks a token stream produced for sf:
// 1) every span is non-empty, belongs to sf and lies within its content
// 2) spans are in source order and do not overlap
// 3) Text is the spanned bytes, minus the quotes for quoted tokens
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d: empty span %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		raw := string(sf.Content[sp.Start:sp.End])
		want := raw
		if tok.IsQuoted() {
			if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
				return fmt.Errorf("token %d: quoted token span %q lacks quotes", i, raw)
			}
			want = raw[1 : len(raw)-1]
		}
		if tok.Text != want {
			return fmt.Errorf("token %d: text %q does not match source %q", i, tok.Text, want)
		}
	}
	return nil
}
