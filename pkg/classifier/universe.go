package classifier

import "github.com/pkg/errors"

// Universe is the closed, ordered set of labels a classifier distinguishes.
// Its order fixes the layout of frequency vectors and priors, and breaks
// exact score ties in favour of the earlier label.
type Universe[L comparable] struct {
	labels []L
	index  map[L]int
}

// NewUniverse creates a universe from distinct labels
func NewUniverse[L comparable](labels ...L) (*Universe[L], error) {
	if len(labels) == 0 {
		return nil, errors.Wrap(ErrTrainingData, "label universe is empty")
	}
	u := &Universe[L]{
		labels: make([]L, 0, len(labels)),
		index:  make(map[L]int, len(labels)),
	}
	for _, l := range labels {
		if _, dup := u.index[l]; dup {
			return nil, errors.Wrapf(ErrTrainingData, "duplicate label %v in universe", l)
		}
		u.index[l] = len(u.labels)
		u.labels = append(u.labels, l)
	}
	return u, nil
}

// Labels returns the labels in universe order
func (u *Universe[L]) Labels() []L {
	return append([]L(nil), u.labels...)
}

// Len returns the number of labels
func (u *Universe[L]) Len() int { return len(u.labels) }

// Index returns the position of l and whether it belongs to the universe
func (u *Universe[L]) Index(l L) (int, bool) {
	i, ok := u.index[l]
	return i, ok
}

// At returns the label at position i
func (u *Universe[L]) At(i int) L { return u.labels[i] }
