package driver

import (
	"context"
	"fmt"

	"ldscript/internal/diag"
	"ldscript/internal/observ"
	"ldscript/internal/script"
	"ldscript/internal/session"
	"ldscript/internal/source"
	"ldscript/internal/trace"
)

// ParseOptions configures one interpretation of a top-level script.
type ParseOptions struct {
	MaxDiagnostics int
	// Session is pre-seeded by the caller (flags, preset); nil means a fresh one.
	Session         *session.Session
	FS              script.FileSystem
	MaxIncludeDepth int
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Session *session.Session
	Bag     *diag.Bag
	// Err is the script's first error, nil on normal completion.
	Err          *script.Error
	UnderSysroot bool
	Timer        *observ.Timer
}

// Snapshot returns the interpreted session keyed by the script path and hash.
func (r *ParseResult) Snapshot() *session.Snapshot {
	return r.Session.Snapshot(r.File.Path, r.File.Hash)
}

// Parse loads the script at path and interprets it. The returned error is
// only for a script that cannot be loaded; script errors land in
// ParseResult.Err and ParseResult.Bag.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()

	idx := timer.Begin("load")
	fileID, err := fs.Load(path)
	if err != nil {
		timer.End(idx, "failed")
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	timer.End(idx, path)

	return interpret(ctx, fs, fs.Get(fileID), timer, opts), nil
}

// ParseSource interprets an in-memory script, e.g. stdin.
func ParseSource(ctx context.Context, name string, content []byte, opts ParseOptions) *ParseResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return interpret(ctx, fs, file, observ.NewTimer(), opts)
}

func interpret(ctx context.Context, fs *source.FileSet, file *source.File, timer *observ.Timer, opts ParseOptions) *ParseResult {
	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	tracer := trace.FromContext(ctx)

	span := trace.Begin(tracer, trace.ScopePass, "interpret", 0).WithExtra("script", file.Path)
	idx := timer.Begin("interpret")

	p := script.New(file, script.Options{
		Files:           fs,
		FS:              opts.FS,
		Reporter:        diag.BagReporter{Bag: bag},
		Tracer:          tracer,
		MaxIncludeDepth: opts.MaxIncludeDepth,
		ParentSpan:      span.ID(),
	}.ForSession(sess))
	_ = p.Run()

	note := fmt.Sprintf("%d files, %d libraries", len(sess.Driver.Files), len(sess.Driver.Libraries))
	if p.Err() != nil {
		note = p.Err().Kind.String()
	}
	timer.End(idx, note)
	span.End(note)

	return &ParseResult{
		FileSet:      fs,
		File:         file,
		Session:      sess,
		Bag:          bag,
		Err:          p.Err(),
		UnderSysroot: p.UnderSysroot(),
		Timer:        timer,
	}
}
