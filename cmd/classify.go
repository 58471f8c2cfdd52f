package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
	"github.com/zpam/naive-classifier/pkg/profiler"
	"github.com/zpam/naive-classifier/pkg/tracker"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <questions.json>",
	Short: "Classify questions from a JSON file",
	Long: `Train on the whole configured dataset, then predict the round of every
question in the given JSON file.

Questions whose round is already known are also scored for accuracy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(configPath, logLevel)
		if err != nil {
			return err
		}
		defer rt.Close()

		questions, err := jeopardy.ReadQuestionsFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read questions: %v", err)
		}

		return classifyQuestions(cmd.Context(), rt, questions, cmd.OutOrStdout())
	},
}

// classifyQuestions trains on the configured dataset and predicts questions
func classifyQuestions(ctx context.Context, rt *runtime, questions []*jeopardy.Question, out io.Writer) error {
	prof := profiler.NewProfiler()

	universe, sets, err := loadLabeledSets(ctx, rt, prof)
	if err != nil {
		return err
	}
	model, err := trainModel(rt, prof, universe, sets)
	if err != nil {
		return err
	}

	at := tracker.NewAccuracyTracker(universe)
	for i, q := range questions {
		fs, err := jeopardy.BuildUnlabeled(q)
		if err != nil {
			return fmt.Errorf("question %d: %v", i, err)
		}
		p := model.Gamma(fs)

		actual := jeopardy.Round(q.Round)
		if _, known := universe.Index(actual); known {
			if err := at.Record(actual, p.Label); err != nil {
				return fmt.Errorf("question %d: %v", i, err)
			}
			fmt.Fprintf(out, "Actual class: %s | Predicted class: %s, gamma = %g\n", actual, p.Label, p.Score)
		} else {
			fmt.Fprintf(out, "Predicted class: %s, gamma = %g\n", p.Label, p.Score)
		}
	}

	if at.Total() > 0 {
		fmt.Fprintf(out, "\n")
		at.PrintReport(out)
	}
	return nil
}
