package lexer

import (
	"ldscript/internal/diag"
	"ldscript/internal/source"
	"ldscript/internal/token"
)

// Lexer splits one script file into tokens. A lexical error is fatal: the
// whole file yields no tokens at all.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
	failed   bool
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
	}
}

// Tokenize lexes the whole file. On an unterminated quote or comment the
// error goes to r and the result is (nil, false).
func Tokenize(file *source.File, r diag.Reporter) ([]token.Token, bool) {
	return New(file, r).All()
}

// All returns every token of the file in source order.
func (lx *Lexer) All() ([]token.Token, bool) {
	var toks []token.Token
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	if lx.failed {
		return nil, false
	}
	return toks, true
}

// Next возвращает следующий токен; false означает конец входа или ошибку.
func (lx *Lexer) Next() (token.Token, bool) {
	if lx.failed {
		return token.Token{}, false
	}
	if !lx.skipSpace() || lx.cursor.EOF() {
		return token.Token{}, false
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '"':
		return lx.scanQuoted()
	case isWordByte(ch):
		return lx.scanWord(), true
	default:
		// символ вне набора слова: отдельный односимвольный токен
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Punct, Span: sp, Text: lx.cursor.Text(sp)}, true
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.failed = true
	diag.Emit(lx.reporter, diag.NewError(code, sp, msg))
}
