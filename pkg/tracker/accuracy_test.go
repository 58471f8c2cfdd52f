package tracker

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/zpam/naive-classifier/pkg/classifier"
)

func newTestTracker(t *testing.T) *AccuracyTracker[string] {
	t.Helper()
	u, err := classifier.NewUniverse("spam", "ham", "unsure")
	if err != nil {
		t.Fatalf("Failed to build universe: %v", err)
	}
	return NewAccuracyTracker(u)
}

func TestAccuracy(t *testing.T) {
	at := newTestTracker(t)

	if at.Accuracy() != 0 {
		t.Errorf("Expected 0 accuracy before recording, got %v", at.Accuracy())
	}

	records := []struct{ actual, predicted string }{
		{"spam", "spam"},
		{"spam", "ham"},
		{"ham", "ham"},
		{"ham", "ham"},
	}
	for _, r := range records {
		if err := at.Record(r.actual, r.predicted); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	if at.Total() != 4 || at.Correct() != 3 {
		t.Errorf("Expected 3/4, got %d/%d", at.Correct(), at.Total())
	}
	if at.Accuracy() != 0.75 {
		t.Errorf("Expected 0.75 accuracy, got %v", at.Accuracy())
	}
	if n := at.Count("spam", "ham"); n != 1 {
		t.Errorf("Expected one spam classified as ham, got %d", n)
	}
	if n := at.Count("missing", "ham"); n != 0 {
		t.Errorf("Expected 0 for unknown label, got %d", n)
	}
}

func TestRecordRejectsUnknownLabels(t *testing.T) {
	at := newTestTracker(t)

	if err := at.Record("phish", "spam"); err == nil {
		t.Error("Expected error for unknown actual label")
	}
	if err := at.Record("spam", "phish"); err == nil {
		t.Error("Expected error for unknown predicted label")
	}
	if at.Total() != 0 {
		t.Errorf("Rejected records should not count, got %d", at.Total())
	}
}

func TestGetStats(t *testing.T) {
	at := newTestTracker(t)
	_ = at.Record("spam", "spam")
	_ = at.Record("spam", "ham")
	_ = at.Record("ham", "spam")
	_ = at.Record("ham", "ham")
	_ = at.Record("ham", "ham")

	stats := at.GetStats()
	if len(stats) != 3 {
		t.Fatalf("Expected 3 labels, got %d", len(stats))
	}

	tests := []struct {
		label                      string
		actual, predicted, correct int
		precision, recall          float64
	}{
		{"spam", 2, 2, 1, 0.5, 0.5},
		{"ham", 3, 3, 2, 2.0 / 3, 2.0 / 3},
		{"unsure", 0, 0, 0, 0, 0},
	}
	for i, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s := stats[i]
			if s.Label != tt.label {
				t.Errorf("Expected label %s at %d, got %s", tt.label, i, s.Label)
			}
			if s.Actual != tt.actual || s.Predicted != tt.predicted || s.Correct != tt.correct {
				t.Errorf("Unexpected counts: %+v", s)
			}
			if s.Precision() != tt.precision || s.Recall() != tt.recall {
				t.Errorf("Unexpected precision/recall: %v %v", s.Precision(), s.Recall())
			}
		})
	}
}

func TestConcurrentRecord(t *testing.T) {
	at := newTestTracker(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			predicted := "spam"
			if i%4 == 0 {
				predicted = "ham"
			}
			_ = at.Record("spam", predicted)
		}(i)
	}
	wg.Wait()

	if at.Total() != 100 || at.Correct() != 75 {
		t.Errorf("Expected 75/100, got %d/%d", at.Correct(), at.Total())
	}
}

func TestResetAndReport(t *testing.T) {
	at := newTestTracker(t)
	_ = at.Record("spam", "spam")
	_ = at.Record("ham", "spam")

	var buf bytes.Buffer
	at.PrintReport(&buf)
	out := buf.String()
	if !strings.Contains(out, "50.00% (1/2)") {
		t.Errorf("Unexpected accuracy line:\n%s", out)
	}
	if !strings.Contains(out, "unsure") {
		t.Errorf("Report should list every label:\n%s", out)
	}

	at.Reset()
	if at.Total() != 0 || at.Count("spam", "spam") != 0 {
		t.Error("Reset should clear all counts")
	}
}
