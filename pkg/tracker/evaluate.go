package tracker

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/zpam/naive-classifier/pkg/classifier"
)

// Predictor scores a feature set. *classifier.Classifier satisfies it.
type Predictor[L comparable] interface {
	Gamma(fs *classifier.FeatureSet[L]) classifier.Prediction[L]
}

// Evaluate classifies labeled held-out sets on at most concurrent workers
// and tallies the results. Predictions are returned in input order.
func Evaluate[L comparable](ctx context.Context, model Predictor[L], universe *classifier.Universe[L], sets []*classifier.FeatureSet[L], concurrent int) (*AccuracyTracker[L], []classifier.Prediction[L], error) {
	if concurrent < 1 {
		concurrent = 1
	}

	for i, fs := range sets {
		if fs == nil {
			return nil, nil, errors.Errorf("held-out set %d is nil", i)
		}
		if _, ok := fs.Label(); !ok {
			return nil, nil, errors.Errorf("held-out set %d has no label", i)
		}
	}

	at := NewAccuracyTracker(universe)
	predictions := make([]classifier.Prediction[L], len(sets))

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	// Channel to control concurrency
	semaphore := make(chan struct{}, concurrent)

	for i, fs := range sets {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(i int, fs *classifier.FeatureSet[L]) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			p := model.Gamma(fs)
			predictions[i] = p

			actual, _ := fs.Label()
			if err := at.Record(actual, p.Label); err != nil {
				once.Do(func() { firstErr = err })
			}
		}(i, fs)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "evaluation cancelled")
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return at, predictions, nil
}
