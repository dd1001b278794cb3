package fuzztests

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"ldscript/internal/diag"
	"ldscript/internal/script"
	"ldscript/internal/session"
	"ldscript/internal/source"
)

// runTimeout is the maximum time allowed for one input; longer means a hang.
const runTimeout = 5 * time.Second

// loopFS serves every INCLUDE with the fuzz input itself and reports every
// other path as missing.
type loopFS struct{ data []byte }

func (loopFS) Exists(string) bool          { return false }
func (loopFS) Equivalent(_, _ string) bool { return false }
func (l loopFS) ReadFile(path string) ([]byte, error) {
	if path == "self.t" {
		return l.data, nil
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

func FuzzScriptNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		done := make(chan struct{})
		var (
			err error
			bag = diag.NewBag(16)
		)
		go func() {
			defer close(done)
			files := source.NewFileSet()
			file := files.Get(files.AddVirtual("fuzz.t", input))
			opts := script.Options{
				Files:           files,
				FS:              loopFS{data: input},
				Reporter:        diag.BagReporter{Bag: bag},
				MaxIncludeDepth: 8,
			}.ForSession(session.New())
			err = script.Run(file, opts)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("script run hung on input %q", input)
		}

		var se *script.Error
		switch {
		case err == nil:
			if bag.Len() != 0 {
				t.Fatalf("clean run reported %d diagnostics", bag.Len())
			}
		case errors.As(err, &se):
			if bag.Len() != 1 || bag.Items()[0].Message != se.Msg {
				t.Fatalf("error %v reported as %+v", se, bag.Items())
			}
		default:
			t.Fatalf("unexpected error type %T: %v", err, err)
		}
	})
}
