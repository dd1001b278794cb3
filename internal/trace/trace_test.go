package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelOff, KindError, ScopeDriver, false},
		{LevelError, KindError, ScopeFile, true},
		{LevelError, KindSpanBegin, ScopeDriver, false},
		{LevelPhase, KindSpanBegin, ScopePass, true},
		{LevelPhase, KindPoint, ScopeDirective, false},
		{LevelDetail, KindPoint, ScopeDirective, true},
		{LevelDetail, KindPoint, ScopeFile, false},
		{LevelDebug, KindPoint, ScopeFile, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.kind, tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s, %s) = %v, want %v", tt.level, tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	sp := Begin(tr, ScopePass, "interpret", 0).WithExtra("script", "link.t")
	Point(tr, ScopeDirective, "ENTRY", "", sp.ID())
	Point(tr, ScopeFile, "file", "crt1.o", sp.ID()) // filtered out at detail
	sp.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ interpret") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "  • ENTRY") {
		t.Errorf("point line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "← interpret (ok) {script=link.t}") {
		t.Errorf("end line = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)

	Begin(tr, ScopePass, "interpret", 0).End("")
	Error(tr, ScopeDirective, "syntax error", "unknown directive: X", 7)

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("want exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if ev["kind"] != "error" || ev["detail"] != "unknown directive: X" || ev["parent_id"] != float64(7) {
		t.Fatalf("event = %v", ev)
	}
}

func TestSlogTracerFanout(t *testing.T) {
	var a, b bytes.Buffer
	tr := NewSlogTracer(LevelDebug, nil,
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	Point(tr, ScopeFile, "file", "crt1.o", 0)
	Error(tr, ScopeDirective, "resolution error", "unable to find x", 0)

	if n := strings.Count(a.String(), "\n"); n != 2 {
		t.Fatalf("debug handler got %d records:\n%s", n, a.String())
	}
	// file-scope events are debug records; the info handler drops them
	if n := strings.Count(b.String(), "\n"); n != 1 || !strings.Contains(b.String(), "level=ERROR") {
		t.Fatalf("info handler got:\n%s", b.String())
	}
	if !strings.Contains(a.String(), `"detail":"crt1.o"`) {
		t.Fatalf("missing detail attr:\n%s", a.String())
	}
}

func TestNewSelectsTracer(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level must give Nop, got %T %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Format: FormatLog, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*SlogTracer); !ok {
		t.Fatalf("FormatLog gave %T", tr)
	}
	Begin(tr, ScopeDriver, "parse", 0).End("")
	if !strings.Contains(buf.String(), "msg=parse") {
		t.Fatalf("slog output = %q", buf.String())
	}

	tr, err = New(Config{Level: LevelPhase, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*StreamTracer); !ok {
		t.Fatalf("default format gave %T", tr)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must give Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not found in context")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	sp := Begin(Nop, ScopePass, "x", 0)
	if sp.ID() != 0 {
		t.Fatalf("ID = %d", sp.ID())
	}
	if d := sp.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("duration = %v", d)
	}
}
