package classifier

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Classifier is a trained naive-independence classifier. The only way to get
// one is Train; afterwards it is read-only, so Gamma and PresentFeatures may
// be called from any number of goroutines without locking.
type Classifier[L comparable] struct {
	universe *Universe[L]

	// table[f][k] is the fraction of class k examples that contain f
	table map[Feature][]float64
	// counts[f][k] is the number of class k examples that contain f
	counts map[Feature][]int
	// features in first-seen order
	features []Feature

	classCounts []int
	priors      []float64
	total       int
}

// Prediction is the outcome of Gamma
type Prediction[L comparable] struct {
	Label L
	// Score is the winning class prior multiplied by the frequency of every
	// recognised feature. It is a product of relative frequencies, not a
	// normalised posterior probability.
	Score float64
	// Scores holds every class score in universe order
	Scores []float64
}

// Train estimates per-class feature frequencies and class priors from
// labeled examples in a single pass. Frequencies are plain relative counts
// with no smoothing, so a feature never seen with a class has frequency 0
// for it.
func Train[L comparable](universe *Universe[L], examples []*FeatureSet[L]) (*Classifier[L], error) {
	if universe == nil || universe.Len() == 0 {
		return nil, errors.Wrap(ErrTrainingData, "label universe is empty")
	}
	if len(examples) == 0 {
		return nil, errors.Wrap(ErrTrainingData, "training set is empty")
	}

	k := universe.Len()
	c := &Classifier[L]{
		universe:    universe,
		table:       make(map[Feature][]float64),
		counts:      make(map[Feature][]int),
		classCounts: make([]int, k),
		priors:      make([]float64, k),
	}

	for n, example := range examples {
		if example == nil {
			return nil, errors.Wrapf(ErrTrainingData, "example %d is nil", n)
		}
		label, ok := example.Label()
		if !ok {
			return nil, errors.Wrapf(ErrTrainingData, "example %d has no label", n)
		}
		class, ok := universe.Index(label)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownLabel, "example %d has label %v", n, label)
		}

		for _, f := range example.Features() {
			row, seen := c.counts[f]
			if !seen {
				row = make([]int, k)
				c.counts[f] = row
				c.features = append(c.features, f)
			}
			row[class]++
		}
		c.classCounts[class]++
		c.total++
	}

	for class, n := range c.classCounts {
		if n == 0 {
			return nil, errors.Wrapf(ErrTrainingData, "no training examples for label %v", universe.At(class))
		}
	}

	for f, row := range c.counts {
		freq := make([]float64, k)
		for class, n := range row {
			freq[class] = float64(n) / float64(c.classCounts[class])
		}
		c.table[f] = freq
	}

	for class, n := range c.classCounts {
		c.priors[class] = float64(n) / float64(c.total)
	}

	return c, nil
}

// Gamma classifies a feature set. Every class score starts at the class
// prior and is multiplied by the class frequency of each feature that was
// seen in training; unseen features are ignored. The label with the strictly
// largest score wins, and exact ties go to the label that comes first in the
// universe. Any label carried by fs is ignored.
func (c *Classifier[L]) Gamma(fs *FeatureSet[L]) Prediction[L] {
	scores := append([]float64(nil), c.priors...)

	if fs != nil {
		for _, f := range fs.Features() {
			freq, ok := c.table[f]
			if !ok {
				continue
			}
			for class := range scores {
				scores[class] *= freq[class]
			}
		}
	}

	best := 0
	for class := 1; class < len(scores); class++ {
		if scores[class] > scores[best] {
			best = class
		}
	}

	return Prediction[L]{
		Label:  c.universe.At(best),
		Score:  scores[best],
		Scores: scores,
	}
}

// Labels returns the label universe in order
func (c *Classifier[L]) Labels() []L {
	return c.universe.Labels()
}

// Priors returns a copy of the class priors in universe order
func (c *Classifier[L]) Priors() []float64 {
	return append([]float64(nil), c.priors...)
}

// Frequencies returns a copy of the per-class frequencies of f and whether f
// was seen during training
func (c *Classifier[L]) Frequencies(f Feature) ([]float64, bool) {
	freq, ok := c.table[f]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), freq...), true
}

// Features returns the trained features in the order they were first seen
func (c *Classifier[L]) Features() []Feature {
	return append([]Feature(nil), c.features...)
}

// Len returns the number of distinct trained features
func (c *Classifier[L]) Len() int { return len(c.features) }

// ModelInfo summarises a trained classifier
type ModelInfo[L comparable] struct {
	Examples    int       `json:"examples"`
	Features    int       `json:"features"`
	Labels      []L       `json:"labels"`
	ClassCounts []int     `json:"class_counts"`
	Priors      []float64 `json:"priors"`
}

// Info returns information about the trained model
func (c *Classifier[L]) Info() *ModelInfo[L] {
	return &ModelInfo[L]{
		Examples:    c.total,
		Features:    len(c.features),
		Labels:      c.universe.Labels(),
		ClassCounts: append([]int(nil), c.classCounts...),
		Priors:      c.Priors(),
	}
}

// PrintStats writes a summary of the trained model
func (c *Classifier[L]) PrintStats(w io.Writer) {
	info := c.Info()

	fmt.Fprintf(w, "🧠 Naive Bayes Model\n")
	fmt.Fprintf(w, "════════════════════════════════════════\n")
	fmt.Fprintf(w, "Training examples: %d\n", info.Examples)
	fmt.Fprintf(w, "Distinct features: %d\n", info.Features)
	fmt.Fprintf(w, "\nClasses:\n")
	for i, label := range info.Labels {
		fmt.Fprintf(w, "  %-20v %8d examples  (prior %.4f)\n", label, info.ClassCounts[i], info.Priors[i])
	}
	fmt.Fprintf(w, "\n")
}
