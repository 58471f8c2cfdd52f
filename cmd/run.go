package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zpam/naive-classifier/pkg/dataset"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
	"github.com/zpam/naive-classifier/pkg/profiler"
	"github.com/zpam/naive-classifier/pkg/tracker"
)

var (
	runSeed       int64
	runTrainRatio float64
	runSamples    int
	runLimit      int
	runStats      bool
	runTimings    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Train on a random split and report accuracy",
	Long: `Load the configured dataset, shuffle it, train on the first part of the split
and classify the held-out part.

Sample predictions are printed first, followed by the accuracy over the first
accuracy_limit held-out questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(configPath, logLevel)
		if err != nil {
			return err
		}
		defer rt.Close()

		flags := cmd.Flags()
		if flags.Changed("seed") {
			rt.cfg.Evaluation.Seed = runSeed
		}
		if flags.Changed("train-ratio") {
			rt.cfg.Evaluation.TrainRatio = runTrainRatio
		}
		if flags.Changed("samples") {
			rt.cfg.Evaluation.SamplePredictions = runSamples
		}
		if flags.Changed("limit") {
			rt.cfg.Evaluation.AccuracyLimit = runLimit
		}
		if err := rt.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %v", err)
		}

		return runEvaluation(cmd.Context(), rt, cmd.OutOrStdout(), runStats, runTimings)
	},
}

// runEvaluation performs one train/test run and writes the report to out
func runEvaluation(ctx context.Context, rt *runtime, out io.Writer, showStats, showTimings bool) error {
	prof := profiler.NewProfiler()
	eval := rt.cfg.Evaluation

	universe, sets, err := loadLabeledSets(ctx, rt, prof)
	if err != nil {
		return err
	}

	rng := dataset.NewRand(eval.Seed, func() int64 { return time.Now().UnixNano() })
	train, test, err := dataset.Split(sets, eval.TrainRatio, rng)
	if err != nil {
		return err
	}
	rt.logger.WithFields(logrus.Fields{
		"train": len(train),
		"test":  len(test),
		"seed":  eval.Seed,
	}).Debug("dataset split")

	model, err := trainModel(rt, prof, universe, train)
	if err != nil {
		return err
	}
	if showStats {
		model.PrintStats(out)
	}

	samples := eval.SamplePredictions
	if samples > len(test) {
		samples = len(test)
	}
	for _, fs := range test[:samples] {
		actual, _ := fs.Label()
		p := model.Gamma(fs)
		fmt.Fprintf(out, "Actual class: %s | Predicted class: %s, gamma = %g\n", actual, p.Label, p.Score)
	}

	scored := test
	if eval.AccuracyLimit > 0 && eval.AccuracyLimit < len(scored) {
		scored = scored[:eval.AccuracyLimit]
	}

	var at *tracker.AccuracyTracker[jeopardy.Round]
	err = prof.Time("evaluate", func() error {
		var err error
		at, _, err = tracker.Evaluate[jeopardy.Round](ctx, model, universe, scored, eval.MaxConcurrent)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate: %v", err)
	}

	fmt.Fprintf(out, "\n")
	at.PrintReport(out)
	rt.logger.WithFields(logrus.Fields{
		"scored":   at.Total(),
		"accuracy": at.Accuracy(),
	}).Info("evaluation finished")

	if showTimings {
		fmt.Fprintf(out, "\n")
		prof.PrintReport(out)
	}
	return nil
}

func init() {
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Shuffle seed (0 = seed from the clock)")
	runCmd.Flags().Float64Var(&runTrainRatio, "train-ratio", 0.8, "Share of questions used for training")
	runCmd.Flags().IntVar(&runSamples, "samples", 10, "Number of sample predictions to print")
	runCmd.Flags().IntVar(&runLimit, "limit", 1000, "Held-out questions scored for accuracy (0 = all)")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "Print model statistics after training")
	runCmd.Flags().BoolVar(&runTimings, "timings", true, "Print phase timings")
}
