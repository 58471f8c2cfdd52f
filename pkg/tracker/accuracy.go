package tracker

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/zpam/naive-classifier/pkg/classifier"
)

// AccuracyTracker tallies predictions against their true labels
type AccuracyTracker[L comparable] struct {
	mu       sync.RWMutex
	universe *classifier.Universe[L]

	// confusion[actual][predicted]
	confusion [][]int
	total     int
	correct   int
}

// LabelStats contains per-label results
type LabelStats[L comparable] struct {
	Label     L
	Actual    int // held-out sets carrying this label
	Predicted int // sets classified as this label
	Correct   int
}

// Recall is the share of sets with this label that were classified correctly
func (s LabelStats[L]) Recall() float64 {
	if s.Actual == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Actual)
}

// Precision is the share of predictions of this label that were right
func (s LabelStats[L]) Precision() float64 {
	if s.Predicted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predicted)
}

// NewAccuracyTracker creates a tracker over the labels of universe
func NewAccuracyTracker[L comparable](universe *classifier.Universe[L]) *AccuracyTracker[L] {
	confusion := make([][]int, universe.Len())
	for i := range confusion {
		confusion[i] = make([]int, universe.Len())
	}
	return &AccuracyTracker[L]{
		universe:  universe,
		confusion: confusion,
	}
}

// Record tallies one prediction. Labels outside the universe are rejected.
func (at *AccuracyTracker[L]) Record(actual, predicted L) error {
	a, ok := at.universe.Index(actual)
	if !ok {
		return errors.Errorf("actual label %v is not in the universe", actual)
	}
	p, ok := at.universe.Index(predicted)
	if !ok {
		return errors.Errorf("predicted label %v is not in the universe", predicted)
	}

	at.mu.Lock()
	defer at.mu.Unlock()

	at.confusion[a][p]++
	at.total++
	if a == p {
		at.correct++
	}
	return nil
}

// Total returns the number of recorded predictions
func (at *AccuracyTracker[L]) Total() int {
	at.mu.RLock()
	defer at.mu.RUnlock()
	return at.total
}

// Correct returns the number of correct predictions
func (at *AccuracyTracker[L]) Correct() int {
	at.mu.RLock()
	defer at.mu.RUnlock()
	return at.correct
}

// Accuracy returns correct/total, or 0 before anything is recorded
func (at *AccuracyTracker[L]) Accuracy() float64 {
	at.mu.RLock()
	defer at.mu.RUnlock()

	if at.total == 0 {
		return 0
	}
	return float64(at.correct) / float64(at.total)
}

// Count returns how often actual was classified as predicted
func (at *AccuracyTracker[L]) Count(actual, predicted L) int {
	a, ok := at.universe.Index(actual)
	if !ok {
		return 0
	}
	p, ok := at.universe.Index(predicted)
	if !ok {
		return 0
	}

	at.mu.RLock()
	defer at.mu.RUnlock()
	return at.confusion[a][p]
}

// GetStats returns per-label results in universe order
func (at *AccuracyTracker[L]) GetStats() []LabelStats[L] {
	at.mu.RLock()
	defer at.mu.RUnlock()

	stats := make([]LabelStats[L], at.universe.Len())
	for i := range stats {
		stats[i].Label = at.universe.At(i)
	}
	for a, row := range at.confusion {
		for p, n := range row {
			stats[a].Actual += n
			stats[p].Predicted += n
			if a == p {
				stats[a].Correct += n
			}
		}
	}
	return stats
}

// Reset clears all recorded predictions
func (at *AccuracyTracker[L]) Reset() {
	at.mu.Lock()
	defer at.mu.Unlock()

	for _, row := range at.confusion {
		for i := range row {
			row[i] = 0
		}
	}
	at.total = 0
	at.correct = 0
}

// PrintReport writes the overall accuracy and a per-label breakdown
func (at *AccuracyTracker[L]) PrintReport(w io.Writer) {
	total, correct := at.Total(), at.Correct()

	fmt.Fprintf(w, "📊 Accuracy: %.2f%% (%d/%d)\n", at.Accuracy()*100, correct, total)
	if total == 0 {
		return
	}

	fmt.Fprintf(w, "%-24s %8s %8s %8s %10s %10s\n", "Label", "Actual", "Predict", "Correct", "Precision", "Recall")
	for _, s := range at.GetStats() {
		fmt.Fprintf(w, "%-24s %8d %8d %8d %9.1f%% %9.1f%%\n",
			truncate(fmt.Sprint(s.Label), 24), s.Actual, s.Predicted, s.Correct, s.Precision()*100, s.Recall()*100)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
