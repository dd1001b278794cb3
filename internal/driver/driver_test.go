package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"ldscript/internal/diag"
	"ldscript/internal/script"
	"ldscript/internal/session"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseScriptOnDisk(t *testing.T) {
	dir := t.TempDir()
	crt := writeFile(t, dir, "crt1.o", "")
	inc := writeFile(t, dir, "sections.t", "SECTIONS { .text : { *(.text) } }")
	main := writeFile(t, dir, "link.t",
		"ENTRY(_start)\nINPUT("+crt+")\nINCLUDE "+inc+"\nSEARCH_DIR("+dir+")\nINPUT(-lc)\n")

	res, err := Parse(context.Background(), main, ParseOptions{MaxDiagnostics: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil || res.Bag.Len() != 0 {
		t.Fatalf("unexpected failure: %v %+v", res.Err, res.Bag.Items())
	}
	sess := res.Session
	if sess.Config.Entry != "_start" {
		t.Fatalf("entry = %q", sess.Config.Entry)
	}
	if len(sess.Driver.Files) != 1 || sess.Driver.Files[0].Path != crt {
		t.Fatalf("files = %+v", sess.Driver.Files)
	}
	if got, _ := sess.Config.OutputSections.Get(".text"); !reflect.DeepEqual(got, []string{".text"}) {
		t.Fatalf(".text = %q", got)
	}
	if res.FileSet.Len() != 2 {
		t.Fatalf("file set holds %d files, want script and include", res.FileSet.Len())
	}

	rep := res.Timer.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "load" || rep.Phases[1].Name != "interpret" {
		t.Fatalf("phases = %+v", rep.Phases)
	}

	snap := res.Snapshot()
	if snap.Script != res.File.Path || snap.ScriptHash != res.File.Hash || len(snap.Libraries) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestParseCRLFScriptKeepsQuotedBytes(t *testing.T) {
	main := writeFile(t, t.TempDir(), "link.t", "ENTRY(_start)\r\nEXTERN(\"x\r\ny\")\r\n")

	res, err := Parse(context.Background(), main, ParseOptions{MaxDiagnostics: 4})
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if got := res.Session.Config.Undefined; !reflect.DeepEqual(got, []string{"x\r\ny"}) {
		t.Fatalf("undefined = %q", got)
	}
}

func TestParseMissingScript(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "none.t"), ParseOptions{})
	if err == nil {
		t.Fatal("expected a load error")
	}
}

func TestParseSourceKeepsPresetValues(t *testing.T) {
	sess := session.New()
	sess.Config.Entry = "main"
	sess.Config.OutputFile = "cli.out"

	res := ParseSource(context.Background(), "<stdin>", []byte("ENTRY(_start) OUTPUT(a.out)"), ParseOptions{
		MaxDiagnostics: 4,
		Session:        sess,
	})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if sess.Config.Entry != "main" || sess.Config.OutputFile != "cli.out" {
		t.Fatalf("preset overwritten: %+v", sess.Config)
	}
}

func TestParseSourceError(t *testing.T) {
	res := ParseSource(context.Background(), "<stdin>", []byte("ENTRY(x) BOGUS"), ParseOptions{MaxDiagnostics: 4})
	if res.Err == nil || res.Err.Kind != script.SyntaxError {
		t.Fatalf("err = %v", res.Err)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.SynUnknownDirective {
		t.Fatalf("diagnostics = %+v", res.Bag.Items())
	}
	if note := res.Timer.Report().Phases[0].Note; note != "syntax error" {
		t.Fatalf("timer note = %q", note)
	}
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "link.t", `OUTPUT("a b") /* c */ ;`)
	res, err := Tokenize(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, tok := range res.Tokens {
		texts = append(texts, tok.Text)
	}
	if want := []string{"OUTPUT", "(", "a b", ")", ";"}; !reflect.DeepEqual(texts, want) {
		t.Fatalf("tokens = %q", texts)
	}
}

func TestTokenizeFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.t", "ENTRY(a)"),
		writeFile(t, dir, "b.t", "/* open"),
		filepath.Join(dir, "missing.t"),
		writeFile(t, dir, "c.t", "EXTERN(x y z)"),
	}

	fs, results, err := TokenizeFiles(context.Background(), paths, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is for %s", i, r.Path)
		}
	}
	if len(results[0].Tokens) != 4 || results[0].Bag.Len() != 0 {
		t.Fatalf("a.t = %+v", results[0])
	}
	if results[1].Tokens != nil || results[1].Bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("b.t = %+v", results[1])
	}
	if results[2].Loaded || results[2].Bag.Items()[0].Code != diag.IOCannotOpen {
		t.Fatalf("missing.t = %+v", results[2])
	}
	if fs.Get(results[2].FileID).Path != filepath.ToSlash(paths[2]) {
		t.Fatal("load failure must still get a file entry")
	}
	if len(results[3].Tokens) != 6 {
		t.Fatalf("c.t tokens = %d", len(results[3].Tokens))
	}
}

func TestTokenizeFilesCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.t", "ENTRY(a)")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := TokenizeFiles(ctx, []string{path}, 4, 1); err == nil {
		t.Fatal("expected context error")
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordSink) OnEvent(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordSink) last(file string) Event {
	var out Event
	for _, evt := range r.events {
		if evt.File == file {
			out = evt
		}
	}
	return out
}

func TestTokenizeFilesProgress(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.t", "ENTRY(a)")
	bad := writeFile(t, dir, "b.t", "\"open")
	missing := filepath.Join(dir, "missing.t")

	sink := &recordSink{}
	if _, _, err := TokenizeFilesWithProgress(context.Background(), []string{good, bad, missing}, 4, 2, sink); err != nil {
		t.Fatal(err)
	}
	if got := sink.last(good); got.Status != StatusDone || got.Tokens != 4 {
		t.Fatalf("a.t final event = %+v", got)
	}
	if got := sink.last(bad); got.Status != StatusError {
		t.Fatalf("b.t final event = %+v", got)
	}
	if got := sink.last(missing); got.Status != StatusError {
		t.Fatalf("missing.t final event = %+v", got)
	}
	// queued -> lexing -> done for a loaded file
	var seq []Status
	for _, evt := range sink.events {
		if evt.File == good {
			seq = append(seq, evt.Status)
		}
	}
	if !reflect.DeepEqual(seq, []Status{StatusQueued, StatusWorking, StatusDone}) {
		t.Fatalf("a.t events = %v", seq)
	}
}

func TestParseTestdataScripts(t *testing.T) {
	tests := []struct {
		file      string
		files     int
		asNeeded  int
		sections  int
		undefined []string
	}{
		{file: "glibc_libc.so.t", files: 3, asNeeded: 1},
		{file: "sections.t", sections: 4, undefined: []string{"__libc_start_main"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res, err := Parse(context.Background(), filepath.Join("..", "..", "testdata", tt.file), ParseOptions{MaxDiagnostics: 8})
			if err != nil {
				t.Fatal(err)
			}
			if res.Err != nil {
				t.Fatalf("script error: %v", res.Err)
			}
			sess := res.Session
			if len(sess.Driver.Files) != tt.files {
				t.Fatalf("files = %+v", sess.Driver.Files)
			}
			n := 0
			for _, f := range sess.Driver.Files {
				if f.AsNeeded {
					n++
				}
			}
			if n != tt.asNeeded {
				t.Fatalf("as-needed files = %d, want %d", n, tt.asNeeded)
			}
			if sess.Config.OutputSections.Len() != tt.sections {
				t.Fatalf("sections = %q", sess.Config.OutputSections.Names())
			}
			if len(tt.undefined) > 0 && !reflect.DeepEqual(sess.Config.Undefined, tt.undefined) {
				t.Fatalf("undefined = %q", sess.Config.Undefined)
			}
		})
	}
}
