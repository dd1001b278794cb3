package script_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"ldscript/internal/diag"
	"ldscript/internal/script"
	"ldscript/internal/session"
	"ldscript/internal/source"
)

// memFS это файловая система в памяти; files читаются, dirs только существуют,
// aliases задают пары путей, указывающих на один объект.
type memFS struct {
	files   map[string]string
	dirs    map[string]bool
	aliases map[string]string
}

func newMemFS() *memFS {
	return &memFS{
		files:   map[string]string{},
		dirs:    map[string]bool{},
		aliases: map[string]string{},
	}
}

func (m *memFS) canon(p string) string {
	p = filepath.Clean(p)
	if a, ok := m.aliases[p]; ok {
		return a
	}
	return p
}

func (m *memFS) Exists(p string) bool {
	p = m.canon(p)
	_, ok := m.files[p]
	return ok || m.dirs[p]
}

func (m *memFS) Equivalent(a, b string) bool {
	return m.Exists(a) && m.Exists(b) && m.canon(a) == m.canon(b)
}

func (m *memFS) ReadFile(p string) ([]byte, error) {
	data, ok := m.files[m.canon(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

type runResult struct {
	sess  *session.Session
	bag   *diag.Bag
	files *source.FileSet
	err   error
}

// runScript интерпретирует text как скрипт по пути path.
func runScript(t *testing.T, fsys script.FileSystem, path, text string, setup func(*session.Session)) runResult {
	t.Helper()
	sess := session.New()
	if setup != nil {
		setup(sess)
	}
	files := source.NewFileSet()
	file := files.Get(files.AddVirtual(path, []byte(text)))
	bag := diag.NewBag(16)

	opts := script.Options{
		Files:    files,
		FS:       fsys,
		Reporter: diag.BagReporter{Bag: bag},
	}.ForSession(sess)
	err := script.Run(file, opts)
	return runResult{sess: sess, bag: bag, files: files, err: err}
}

func scriptError(t *testing.T, err error) *script.Error {
	t.Helper()
	var se *script.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *script.Error, got %v", err)
	}
	return se
}

// expectFailure проверяет вид ошибки, код, текст и ровно одну диагностику.
func expectFailure(t *testing.T, r runResult, kind script.ErrorKind, code diag.Code, msg string) {
	t.Helper()
	se := scriptError(t, r.err)
	if se.Kind != kind || se.Code != code || se.Msg != msg {
		t.Fatalf("error = {%v %s %q}, want {%v %s %q}", se.Kind, se.Code.ID(), se.Msg, kind, code.ID(), msg)
	}
	if r.bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %+v", r.bag.Len(), r.bag.Items())
	}
	if d := r.bag.Items()[0]; d.Message != msg || d.Code != code || d.Severity != diag.SevError {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func expectOK(t *testing.T, r runResult) {
	t.Helper()
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", r.bag.Items())
	}
}

func filePaths(d *session.Driver) []string {
	out := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		out = append(out, f.Path)
	}
	return out
}
