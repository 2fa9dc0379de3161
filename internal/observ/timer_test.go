package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimer_BeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("collect")
	tm.End(idx, "3 files")
	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Name != "collect" || rep.Phases[0].Note != "3 files" {
		t.Fatalf("report = %+v", rep)
	}
	if !strings.Contains(tm.Summary(), "collect") {
		t.Fatalf("summary missing phase:\n%s", tm.Summary())
	}
}

func TestTimer_AddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("file", time.Millisecond)
		}()
	}
	wg.Wait()
	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Count != 8 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.TotalMS != 0 {
		t.Fatalf("accumulated phases must not count toward total, got %v", rep.TotalMS)
	}
}

func TestTimer_Nil(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("y", time.Second)
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("nil timer recorded %+v", rep)
	}
}
