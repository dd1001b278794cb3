package lexer

import (
	"testing"

	"ldscript/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.t", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("cursor must be inert at EOF")
	}
}

func TestCursorMarkEat(t *testing.T) {
	cursor := NewCursor(createFile("/*x"))
	m := cursor.Mark()
	if !cursor.Eat('/') || cursor.Eat('/') {
		t.Fatal("Eat must only consume a matching byte")
	}
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != '*' || b1 != 'x' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 1 || cursor.Text(sp) != "/" {
		t.Fatalf("SpanFrom = %+v", sp)
	}
}

func TestWordCharset(t *testing.T) {
	for _, c := range []byte("azAZ09_.$/\\~=+[]*?-:") {
		if !isWordByte(c) {
			t.Errorf("%q must be a word byte", c)
		}
	}
	for _, c := range []byte("(){};,\"<>&|!@#%^' \t") {
		if isWordByte(c) {
			t.Errorf("%q must not be a word byte", c)
		}
	}
}
