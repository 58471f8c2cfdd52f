package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/zpam/naive-classifier/pkg/classifier"
	"github.com/zpam/naive-classifier/pkg/config"
	"github.com/zpam/naive-classifier/pkg/dataset"
	"github.com/zpam/naive-classifier/pkg/dataset/redisstore"
	"github.com/zpam/naive-classifier/pkg/dataset/sqlstore"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
	"github.com/zpam/naive-classifier/pkg/logging"
	"github.com/zpam/naive-classifier/pkg/profiler"
)

// runtime bundles what every data command needs
type runtime struct {
	cfg    *config.Config
	logger *logrus.Logger
	closer io.Closer
}

func (rt *runtime) Close() error {
	return rt.closer.Close()
}

// loadRuntime loads the configuration and applies command-line overrides
func loadRuntime(configPath, logLevel string) (*runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, closer: closer}, nil
}

// openSource returns the configured question source
func openSource(ctx context.Context, cfg *config.Config) (dataset.Source, io.Closer, error) {
	switch cfg.Dataset.Source {
	case config.SourceFile:
		return dataset.FileSource{Path: cfg.Dataset.Path}, nopCloser{}, nil
	case config.SourceRedis, config.SourceSQLite:
		store, err := openStore(ctx, cfg, cfg.Dataset.Source)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// openStore connects to a Redis or SQLite question store
func openStore(ctx context.Context, cfg *config.Config, kind string) (dataset.Store, error) {
	switch kind {
	case config.SourceRedis:
		store, err := redisstore.New(ctx, &cfg.Dataset.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %v", err)
		}
		return store, nil
	case config.SourceSQLite:
		store, err := sqlstore.New(ctx, &cfg.Dataset.SQLite)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %v", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("store must be 'redis' or 'sqlite', got %q", kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadLabeledSets loads questions from the configured source, keeps the ones
// in the universe and builds their feature sets
func loadLabeledSets(ctx context.Context, rt *runtime, prof *profiler.Profiler) (*classifier.Universe[jeopardy.Round], []*classifier.FeatureSet[jeopardy.Round], error) {
	universe, err := rt.cfg.Universe()
	if err != nil {
		return nil, nil, err
	}

	source, closer, err := openSource(ctx, rt.cfg)
	if err != nil {
		return nil, nil, err
	}
	defer closer.Close()

	var questions []*jeopardy.Question
	err = prof.Time("load", func() error {
		var err error
		questions, err = source.Load(ctx)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions: %v", err)
	}

	kept, dropped := dataset.Filter(questions, universe)
	rt.logger.WithFields(logrus.Fields{
		"source":  rt.cfg.Dataset.Source,
		"loaded":  len(questions),
		"kept":    len(kept),
		"dropped": dropped,
	}).Info("questions loaded")

	var sets []*classifier.FeatureSet[jeopardy.Round]
	err = prof.Time("build", func() error {
		var err error
		sets, err = dataset.Build(kept)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build feature sets: %v", err)
	}

	return universe, sets, nil
}

// trainModel trains a classifier as a profiled phase
func trainModel(rt *runtime, prof *profiler.Profiler, universe *classifier.Universe[jeopardy.Round], sets []*classifier.FeatureSet[jeopardy.Round]) (*classifier.Classifier[jeopardy.Round], error) {
	var model *classifier.Classifier[jeopardy.Round]
	err := prof.Time("train", func() error {
		var err error
		model, err = classifier.Train(universe, sets)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to train classifier: %v", err)
	}

	rt.logger.WithFields(logrus.Fields{
		"examples": len(sets),
		"features": model.Len(),
	}).Info("classifier trained")

	return model, nil
}
