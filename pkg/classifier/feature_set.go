package classifier

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// FeatureSet is the evidence for one object: a set of distinct features and,
// for training and evaluation data, the known label.
//
// Features keep their first-insertion order so that iterating a set, and the
// order in which Gamma multiplies frequencies, is reproducible.
//
// The zero value is an empty, unlabeled set.
type FeatureSet[L comparable] struct {
	features *linkedhashset.Set
	label    L
	labeled  bool
}

// NewFeatureSet creates an unlabeled feature set. Duplicate features collapse.
func NewFeatureSet[L comparable](features ...Feature) *FeatureSet[L] {
	fs := &FeatureSet[L]{features: linkedhashset.New()}
	for _, f := range features {
		fs.features.Add(f)
	}
	return fs
}

// NewLabeledFeatureSet creates a feature set with a known label
func NewLabeledFeatureSet[L comparable](label L, features ...Feature) *FeatureSet[L] {
	fs := NewFeatureSet[L](features...)
	fs.label = label
	fs.labeled = true
	return fs
}

// Features returns a copy of the features in insertion order
func (fs *FeatureSet[L]) Features() []Feature {
	if fs.features == nil {
		return []Feature{}
	}
	values := fs.features.Values()
	features := make([]Feature, len(values))
	for i, v := range values {
		features[i] = v.(Feature)
	}
	return features
}

// Contains reports whether the set holds f
func (fs *FeatureSet[L]) Contains(f Feature) bool {
	if fs.features == nil {
		return false
	}
	return fs.features.Contains(f)
}

// Len returns the number of distinct features
func (fs *FeatureSet[L]) Len() int {
	if fs.features == nil {
		return 0
	}
	return fs.features.Size()
}

// Label returns the known label and whether one is set
func (fs *FeatureSet[L]) Label() (L, bool) {
	return fs.label, fs.labeled
}

func (fs *FeatureSet[L]) String() string {
	parts := make([]string, 0, fs.Len())
	for _, f := range fs.Features() {
		parts = append(parts, f.String())
	}
	if fs.labeled {
		return fmt.Sprintf("{%s} -> %v", strings.Join(parts, ", "), fs.label)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
