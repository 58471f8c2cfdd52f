package classifier

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Informativeness describes how strongly a feature separates two classes:
// the class where it is most frequent (High) and the runner-up (Low).
type Informativeness[L comparable] struct {
	Feature Feature
	High    L
	Low     L
	// Ratio is freq(High) / freq(Low). It is 1 when freq(Low) is zero and
	// when both frequencies are equal.
	Ratio float64
	// Neutral is set when the two frequencies are equal
	Neutral bool
}

// PresentFeatures returns the topN most informative trained features,
// ordered by descending ratio, then feature name, then value. The ordering
// is total, so a longer result always extends a shorter one.
//
// With two classes the ratio compares the larger frequency to the smaller.
// With more classes it compares the largest to the second largest.
func (c *Classifier[L]) PresentFeatures(topN int) ([]Informativeness[L], error) {
	if topN < 1 || topN > len(c.features) {
		return nil, errors.Wrapf(ErrInvalidTopN, "top_n must be between 1 and %d, got %d", len(c.features), topN)
	}

	ranked := make([]Informativeness[L], 0, len(c.features))
	for _, f := range c.features {
		ranked = append(ranked, c.informativeness(f))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		if a.Feature.Name() != b.Feature.Name() {
			return a.Feature.Name() < b.Feature.Name()
		}
		if a.Feature.Value().Kind() != b.Feature.Value().Kind() {
			return a.Feature.Value().Kind() < b.Feature.Value().Kind()
		}
		return a.Feature.Value().String() < b.Feature.Value().String()
	})

	return ranked[:topN], nil
}

func (c *Classifier[L]) informativeness(f Feature) Informativeness[L] {
	freq := c.table[f]

	// universe order breaks ties between equal frequencies
	hi, lo := 0, 1
	if len(freq) == 1 {
		lo = 0
	} else if freq[lo] > freq[hi] {
		hi, lo = lo, hi
	}
	for class := 2; class < len(freq); class++ {
		switch {
		case freq[class] > freq[hi]:
			hi, lo = class, hi
		case freq[class] > freq[lo]:
			lo = class
		}
	}

	entry := Informativeness[L]{
		Feature: f,
		High:    c.universe.At(hi),
		Low:     c.universe.At(lo),
		Ratio:   1,
	}
	switch {
	case freq[hi] == freq[lo]:
		entry.Neutral = true
	case freq[lo] == 0:
		// sentinel: a feature absent from the runner-up has no finite ratio
	default:
		entry.Ratio = freq[hi] / freq[lo]
	}
	return entry
}

// WriteInformativeness renders a ranking as a human readable report
func WriteInformativeness[L comparable](w io.Writer, entries []Informativeness[L]) {
	for i, e := range entries {
		pair := fmt.Sprintf("%v:%v", e.High, e.Low)
		if e.Neutral {
			pair = "even"
		}
		fmt.Fprintf(w, "  %2d. %-45s %-40s %8.2f:1\n", i+1, e.Feature, pair, e.Ratio)
	}
}
