package classifier

import "github.com/pkg/errors"

var (
	// ErrConstruction is returned by builders when a raw record is missing a
	// required field or carries a value that cannot be parsed.
	ErrConstruction = errors.New("malformed record")

	// ErrTrainingData is returned by Train when the examples cannot produce
	// well-defined frequencies and priors.
	ErrTrainingData = errors.New("invalid training data")

	// ErrUnknownLabel is returned by Train for an example whose label is not
	// part of the universe. Such examples are rejected, never bucketed. It
	// matches ErrTrainingData under errors.Is.
	ErrUnknownLabel = errors.Wrap(ErrTrainingData, "label outside universe")

	// ErrInvalidTopN is returned by PresentFeatures for an out of range count.
	ErrInvalidTopN = errors.New("invalid top_n")
)
