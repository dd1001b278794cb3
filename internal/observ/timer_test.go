package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	load := tm.Begin("load")
	tm.End(load, "link.t")
	run := tm.Begin("interpret")
	tm.End(run, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.Phases[0].DurationMS != 1 || rep.Phases[0].Note != "link.t" {
		t.Fatalf("load = %+v", rep.Phases[0])
	}
	if rep.TotalMS != 2 {
		t.Fatalf("total = %v", rep.TotalMS)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)
	tm.End(tm.Begin("tokenize"), "12 tokens")

	s := tm.Summary()
	for _, want := range []string{"timings:\n", "tokenize", "2.00 ms  // 12 tokens", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	rep := NewTimer().Report()
	if rep.TotalMS != 0 || len(rep.Phases) != 0 {
		t.Fatalf("report = %+v", rep)
	}
}
