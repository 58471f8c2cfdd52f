package classifier

// Builder derives features from a dataset-specific raw record. Implementations
// must be pure: the same record always yields the same features. A record
// with missing or malformed fields yields an error wrapping ErrConstruction.
type Builder[R any] interface {
	Features(record R) ([]Feature, error)
}

// BuilderFunc adapts a function to the Builder interface
type BuilderFunc[R any] func(record R) ([]Feature, error)

// Features calls f(record)
func (f BuilderFunc[R]) Features(record R) ([]Feature, error) {
	return f(record)
}

// BuildLabeled builds a labeled feature set for training or evaluation
func BuildLabeled[R any, L comparable](b Builder[R], record R, label L) (*FeatureSet[L], error) {
	features, err := b.Features(record)
	if err != nil {
		return nil, err
	}
	return NewLabeledFeatureSet(label, features...), nil
}

// BuildUnlabeled builds a feature set for an object to be classified
func BuildUnlabeled[R any, L comparable](b Builder[R], record R) (*FeatureSet[L], error) {
	features, err := b.Features(record)
	if err != nil {
		return nil, err
	}
	return NewFeatureSet[L](features...), nil
}
