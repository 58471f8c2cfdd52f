// Package dataset loads Jeopardy! questions from their configured source and
// turns them into labeled feature sets.
package dataset

import (
	"context"

	"github.com/pkg/errors"
	"github.com/zpam/naive-classifier/pkg/classifier"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
)

// Source supplies raw question records
type Source interface {
	Load(ctx context.Context) ([]*jeopardy.Question, error)
}

// Store is a Source that can also be filled and emptied
type Store interface {
	Source
	Save(ctx context.Context, questions []*jeopardy.Question) error
	Reset(ctx context.Context) error
	Close() error
}

// FileSource reads a JSON array of questions from disk
type FileSource struct {
	Path string
}

// Load implements Source
func (fs FileSource) Load(ctx context.Context) ([]*jeopardy.Question, error) {
	if fs.Path == "" {
		return nil, errors.New("dataset path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return jeopardy.ReadQuestionsFile(fs.Path)
}

// Filter keeps the questions whose round belongs to universe and returns
// how many were dropped
func Filter(questions []*jeopardy.Question, universe *classifier.Universe[jeopardy.Round]) ([]*jeopardy.Question, int) {
	kept := make([]*jeopardy.Question, 0, len(questions))
	for _, q := range questions {
		if q == nil {
			continue
		}
		if _, ok := universe.Index(jeopardy.Round(q.Round)); ok {
			kept = append(kept, q)
		}
	}
	return kept, len(questions) - len(kept)
}

// Build builds a labeled feature set for every question. The first
// malformed question aborts the build.
func Build(questions []*jeopardy.Question) ([]*classifier.FeatureSet[jeopardy.Round], error) {
	sets := make([]*classifier.FeatureSet[jeopardy.Round], 0, len(questions))
	for i, q := range questions {
		fs, err := jeopardy.Build(q)
		if err != nil {
			return nil, errors.Wrapf(err, "question %d", i)
		}
		sets = append(sets, fs)
	}
	return sets, nil
}
