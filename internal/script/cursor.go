package script

import (
	"fmt"

	"ldscript/internal/diag"
	"ldscript/internal/source"
	"ldscript/internal/token"
	"ldscript/internal/trace"
)

// fail records the first error and reports it; later calls are ignored.
func (p *Parser) fail(kind ErrorKind, code diag.Code, sp source.Span, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = &Error{Kind: kind, Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}

	d := p.err.Diagnostic()
	for _, site := range p.includeSites(sp.File) {
		d = d.WithNote(site, "included from here")
	}
	diag.Emit(p.reporter, d)
	trace.Error(p.tracer, trace.ScopeDirective, kind.String(), p.err.Msg, p.parentID)
}

// includeSites lists the INCLUDE arguments leading to file, innermost first.
func (p *Parser) includeSites(file source.FileID) []source.Span {
	var sites []source.Span
	for f := p.frameOf(file); f != nil && f.parent != nil; f = f.parent {
		sites = append(sites, f.site)
	}
	return sites
}

// frameOf finds the frame reading file: on the stack, or the already popped
// frame of the last consumed token.
func (p *Parser) frameOf(file source.FileID) *frame {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if p.frames[i].file.ID == file {
			return p.frames[i]
		}
	}
	if p.lastAt != nil && p.lastAt.file.ID == file {
		return p.lastAt
	}
	return nil
}

func (p *Parser) failed() bool { return p.err != nil }

// atEOF: an error counts as the end of the stream.
func (p *Parser) atEOF() bool {
	return p.err != nil || p.top() == nil
}

func (p *Parser) unexpectedEOF() {
	p.fail(SyntaxError, diag.SynUnexpectedEOF, p.last.Tail(), "unexpected EOF")
}

// next returns the current token and advances. At EOF it records
// "unexpected EOF" and returns the zero token.
func (p *Parser) next() token.Token {
	if p.err != nil {
		return token.Token{}
	}
	f := p.top()
	if f == nil {
		p.unexpectedEOF()
		return token.Token{}
	}
	tok := f.toks[f.pos]
	f.pos++
	p.last, p.lastAt = tok.Span, f
	return tok
}

// skip consumes the current token only if its value is s.
func (p *Parser) skip(s string) bool {
	if p.err != nil {
		return false
	}
	f := p.top()
	if f == nil {
		p.unexpectedEOF()
		return false
	}
	tok := f.toks[f.pos]
	if !tok.Is(s) {
		return false
	}
	f.pos++
	p.last, p.lastAt = tok.Span, f
	return true
}

// expect consumes one token and records a mismatch unless its value is s.
func (p *Parser) expect(s string) {
	if p.err != nil {
		return
	}
	tok := p.next()
	if p.err != nil {
		return
	}
	if !tok.Is(s) {
		p.fail(SyntaxError, diag.SynExpectMismatch, tok.Span, "%s expected, but got %s", s, tok.Text)
	}
}

// until runs body until closer is consumed or an error is recorded. It is
// the one place where structural loops check the sticky error.
func (p *Parser) until(closer string, body func()) {
	for p.err == nil {
		if p.skip(closer) || p.err != nil {
			return
		}
		body()
	}
}
