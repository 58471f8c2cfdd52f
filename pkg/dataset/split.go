package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Split shuffles a copy of items with rng and returns the first trainRatio
// share as the training set and the rest as the test set.
func Split[T any](items []T, trainRatio float64, rng *rand.Rand) (train, test []T, err error) {
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, errors.Errorf("train ratio must be between 0 and 1, got %v", trainRatio)
	}

	shuffled := append([]T(nil), items...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(float64(len(shuffled)) * trainRatio)
	return shuffled[:cut], shuffled[cut:], nil
}

// NewRand returns a generator for seed, or a time-seeded one when seed is 0
func NewRand(seed int64, now func() int64) *rand.Rand {
	if seed == 0 {
		seed = now()
	}
	return rand.New(rand.NewSource(seed))
}
