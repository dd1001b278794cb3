package script

import (
	"ldscript/internal/diag"
	"ldscript/internal/source"
	"ldscript/internal/token"
	"ldscript/internal/trace"
)

// dispatch is the top-level loop: one directive per iteration, stray
// semicolons ignored, anything unknown is fatal.
func (p *Parser) dispatch() {
	for !p.atEOF() {
		tok := p.next()
		if tok.Is(";") {
			continue
		}
		dir, ok := token.LookupDirective(tok.Text)
		if !ok {
			p.fail(SyntaxError, diag.SynUnknownDirective, tok.Span, "unknown directive: %s", tok.Text)
			return
		}
		trace.Point(p.tracer, trace.ScopeDirective, dir.String(), "", p.parentID)

		switch dir {
		case token.DirEntry:
			p.readEntry()
		case token.DirExtern:
			p.readExtern()
		case token.DirGroup, token.DirInput:
			p.readGroup()
		case token.DirInclude:
			p.readInclude()
		case token.DirOutput:
			p.readOutput()
		case token.DirOutputArch:
			p.readOutputArch()
		case token.DirOutputFormat:
			p.readOutputFormat()
		case token.DirSearchDir:
			p.readSearchDir()
		case token.DirSections:
			p.readSections()
		case token.NoDirective:
			// LookupDirective never returns it with ok=true
		}
	}
}

// ENTRY(sym). -e on the command line takes precedence.
func (p *Parser) readEntry() {
	p.expect("(")
	tok := p.next()
	if !p.failed() {
		p.cfg.SetEntry(tok.Text)
	}
	p.expect(")")
}

// EXTERN(sym sym ...)
func (p *Parser) readExtern() {
	p.expect("(")
	p.until(")", func() {
		p.cfg.AddUndefined(p.next().Text)
	})
}

// GROUP(file ... AS_NEEDED(file ...) ...) and INPUT(...) share this.
func (p *Parser) readGroup() {
	p.expect("(")
	p.until(")", func() {
		tok := p.next()
		if tok.Is(token.AsNeeded) {
			p.readAsNeeded()
			return
		}
		p.addFile(tok)
	})
}

// AS_NEEDED(file ...): the flag is forced on for the block and restored on
// every way out, the error path included.
func (p *Parser) readAsNeeded() {
	p.expect("(")
	orig := p.cfg.AsNeeded
	p.cfg.AsNeeded = true
	defer func() { p.cfg.AsNeeded = orig }()

	p.until(")", func() {
		p.addFile(p.next())
	})
}

// INCLUDE path: the named file is lexed and read before anything that
// follows the path in the current file.
func (p *Parser) readInclude() {
	tok := p.next()
	if p.failed() {
		return
	}
	// next has not popped anything yet: the top frame holds tok
	parent := p.frames[len(p.frames)-1]
	if parent.depth >= p.maxDepth {
		p.fail(ResolutionError, diag.IOIncludeTooDeep, tok.Span,
			"INCLUDE nested too deeply (limit %d): %s", p.maxDepth, tok.Text)
		return
	}

	data, err := p.fs.ReadFile(tok.Text)
	if err != nil {
		p.fail(ResolutionError, diag.IOCannotOpen, tok.Span, "cannot open %s", tok.Text)
		return
	}
	file := p.files.Get(p.files.Add(tok.Text, data, source.FileIncluded))
	f := &frame{file: file, site: tok.Span, parent: parent, depth: parent.depth + 1}

	// frame must already be on the stack for lexical errors to get their
	// "included from here" note
	p.frames = append(p.frames, f)
	toks, ok := p.tokenize(file)
	p.frames = p.frames[:len(p.frames)-1]
	if !ok {
		return
	}
	for i := range toks {
		toks[i].Text = p.save(toks[i].Text)
	}
	f.toks = toks
	p.push(f)
}

// OUTPUT(file). -o on the command line takes precedence.
func (p *Parser) readOutput() {
	p.expect("(")
	tok := p.next()
	if !p.failed() {
		p.cfg.SetOutputFile(tok.Text)
	}
	p.expect(")")
}

// OUTPUT_ARCH(arch): syntax only.
func (p *Parser) readOutputArch() {
	p.expect("(")
	p.next()
	p.expect(")")
}

// OUTPUT_FORMAT(bfd) or OUTPUT_FORMAT(default, big, little): syntax only.
func (p *Parser) readOutputFormat() {
	p.expect("(")
	p.next()
	tok := p.next()
	if p.failed() || tok.Is(")") {
		return
	}
	if !tok.Is(",") {
		p.fail(SyntaxError, diag.SynUnexpectedToken, tok.Span, "unexpected token: %s", tok.Text)
		return
	}
	p.next()
	p.expect(",")
	p.next()
	p.expect(")")
}

// SEARCH_DIR(path)
func (p *Parser) readSearchDir() {
	p.expect("(")
	tok := p.next()
	if !p.failed() {
		p.cfg.AddSearchPath(tok.Text)
	}
	p.expect(")")
}
