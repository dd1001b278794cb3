package script

import (
	"ldscript/internal/diag"
	"ldscript/internal/lexer"
	"ldscript/internal/session"
	"ldscript/internal/source"
	"ldscript/internal/token"
	"ldscript/internal/trace"
)

// DefaultMaxIncludeDepth bounds the INCLUDE chain, the top-level script
// counted as the first link.
const DefaultMaxIncludeDepth = 64

// Registrar receives the input files and libraries named by the script,
// in script order. *session.Driver implements it.
type Registrar interface {
	AddFile(path string)
	AddLibrary(name string)
}

// Options wires the interpreter to the link session.
type Options struct {
	Config   *session.Config
	Driver   Registrar
	Arena    *source.Interner
	Files    *source.FileSet
	FS       FileSystem    // nil → OSFileSystem
	Reporter diag.Reporter // may be nil
	Tracer   trace.Tracer  // nil → trace.Nop
	// MaxIncludeDepth <= 0 means DefaultMaxIncludeDepth.
	MaxIncludeDepth int
	// ParentSpan is the trace span the interpreter's events hang off.
	ParentSpan uint64
}

// ForSession fills Config, Driver and Arena from sess.
func (o Options) ForSession(sess *session.Session) Options {
	o.Config = sess.Config
	o.Driver = sess.Driver
	o.Arena = sess.Arena
	return o
}

// frame is one file on the cursor stack.
type frame struct {
	file *source.File
	toks []token.Token
	pos  int
	// site is the INCLUDE argument that pushed this frame; zero for the root.
	site source.Span
	// parent is the frame holding that INCLUDE; it may already be popped.
	parent *frame
	depth  int // 1 for the root
	span   *trace.Span
}

func (f *frame) exhausted() bool { return f.pos >= len(f.toks) }

// Parser holds the state of one run over a top-level script.
type Parser struct {
	cfg      *session.Config
	driver   Registrar
	arena    *source.Interner
	files    *source.FileSet
	fs       FileSystem
	reporter diag.Reporter
	tracer   trace.Tracer
	maxDepth int
	parentID uint64

	root   *source.File
	frames []*frame
	last   source.Span // span of the most recently consumed token
	lastAt *frame      // frame that token came from; survives the pop at EOF
	err    *Error

	underSysroot bool
}

// New prepares a parser for the top-level script file. The file must
// belong to opts.Files.
func New(file *source.File, opts Options) *Parser {
	p := &Parser{
		cfg:      opts.Config,
		driver:   opts.Driver,
		arena:    opts.Arena,
		files:    opts.Files,
		fs:       opts.FS,
		reporter: opts.Reporter,
		tracer:   opts.Tracer,
		maxDepth: opts.MaxIncludeDepth,
		parentID: opts.ParentSpan,
		root:     file,
		last:     source.Span{File: file.ID},
	}
	if p.fs == nil {
		p.fs = OSFileSystem{}
	}
	if p.tracer == nil {
		p.tracer = trace.Nop
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxIncludeDepth
	}
	if p.arena == nil {
		p.arena = source.NewInterner()
	}
	p.underSysroot = IsUnderSysroot(p.fs, file.Path, p.cfg.Sysroot)
	return p
}

// Run tokenizes and interprets file. It returns nil on normal completion
// and the first recorded *Error otherwise.
func Run(file *source.File, opts Options) error {
	return New(file, opts).Run()
}

// Run interprets the script. Calling it twice is not supported.
func (p *Parser) Run() error {
	toks, ok := p.tokenize(p.root)
	if ok {
		p.push(&frame{file: p.root, toks: toks, depth: 1})
		p.dispatch()
	}
	for i := len(p.frames) - 1; i >= 0; i-- {
		p.frames[i].span.End("aborted")
	}
	p.frames = nil
	if p.err != nil {
		return p.err
	}
	return nil
}

// Err returns the recorded error, if any.
func (p *Parser) Err() *Error { return p.err }

// UnderSysroot reports whether the top-level script lives inside the sysroot.
func (p *Parser) UnderSysroot() bool { return p.underSysroot }

// tokenize lexes one file; a lexical failure becomes the parser's error.
func (p *Parser) tokenize(file *source.File) ([]token.Token, bool) {
	var first lexCapture
	toks, ok := lexer.Tokenize(file, &first)
	if !ok {
		if first.set {
			p.fail(LexicalError, first.d.Code, first.d.Primary, "%s", first.d.Message)
		} else {
			p.fail(LexicalError, diag.UnknownCode, file.EndSpan(), "cannot tokenize %s", file.Path)
		}
		return nil, false
	}
	return toks, true
}

// lexCapture keeps the lexer's diagnostic so that it goes out through fail,
// exactly once, like every other error.
type lexCapture struct {
	d   diag.Diagnostic
	set bool
}

func (c *lexCapture) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if c.set {
		return
	}
	c.d = diag.Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg, Notes: notes}
	c.set = true
}

func (p *Parser) push(f *frame) {
	name := "script:" + f.file.Path
	if f.parent != nil {
		name = "include:" + f.file.Path
	}
	f.span = trace.Begin(p.tracer, trace.ScopeDirective, name, p.parentID)
	p.frames = append(p.frames, f)
}

// top returns the innermost frame that still has tokens, popping exhausted
// frames on the way. nil means the whole stream is consumed.
func (p *Parser) top() *frame {
	for len(p.frames) > 0 {
		f := p.frames[len(p.frames)-1]
		if !f.exhausted() {
			return f
		}
		f.span.End("")
		p.frames = p.frames[:len(p.frames)-1]
	}
	return nil
}

// save copies s into the session arena.
func (p *Parser) save(s string) string {
	return p.arena.Save(s)
}
