package fuzztests

import (
	"testing"

	"ldscript/internal/diag"
	"ldscript/internal/lexer"
	"ldscript/internal/source"
	"ldscript/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.t", input))

		bag := diag.NewBag(64)
		toks, ok := lexer.Tokenize(file, diag.BagReporter{Bag: bag})
		if !ok {
			if toks != nil || bag.Len() != 1 {
				t.Fatalf("failed lex: %d tokens, %d diagnostics", len(toks), bag.Len())
			}
			return
		}
		if bag.Len() != 0 {
			t.Fatalf("successful lex reported %d diagnostics", bag.Len())
		}
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatal(err)
		}
	})
}
