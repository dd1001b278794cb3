package lexer

import (
	"ldscript/internal/diag"
	"ldscript/internal/token"
)

// skipSpace пропускает пробелы и комментарии /* ... */ (без вложенности).
// Возвращает false, если комментарий не закрыт.
func (lx *Lexer) skipSpace() bool {
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '/' && b1 == '*' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.skipUntilCommentEnd() {
				lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start),
					"unclosed comment in a linker script")
				return false
			}
			continue
		}
		if !isSpace(lx.cursor.Peek()) {
			return true
		}
		lx.cursor.Bump()
	}
	return true
}

func (lx *Lexer) skipUntilCommentEnd() bool {
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return true
		}
		lx.cursor.Bump()
	}
	return false
}

// "..." без escape-последовательностей; значение это текст строго между кавычками.
func (lx *Lexer) scanQuoted() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	body := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		inner := lx.cursor.SpanFrom(body)
		if lx.cursor.Eat('"') {
			return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(inner)}, true
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unclosed quote")
	return token.Token{}, false
}

func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isWordByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Word, Span: sp, Text: lx.cursor.Text(sp)}
}
