package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
)

var (
	importStore string
	importReset bool
)

var importCmd = &cobra.Command{
	Use:   "import <questions.json>",
	Short: "Import a JSON dataset into Redis or SQLite",
	Long: `Read a JSON array of Jeopardy! questions and store it in the Redis or SQLite
question store, so later runs can use dataset.source redis or sqlite.`,
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

		return importQuestions(cmd.Context(), rt, importStore, importReset, questions, cmd.OutOrStdout())
	},
}

// importQuestions saves questions into the named store
func importQuestions(ctx context.Context, rt *runtime, kind string, reset bool, questions []*jeopardy.Question, out io.Writer) error {
	store, err := openStore(ctx, rt.cfg, kind)
	if err != nil {
		return err
	}
	defer store.Close()

	if reset {
		if err := store.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset store: %v", err)
		}
		rt.logger.WithField("store", kind).Info("store reset")
	}

	if err := store.Save(ctx, questions); err != nil {
		return fmt.Errorf("failed to save questions: %v", err)
	}

	rt.logger.WithFields(logrus.Fields{
		"store":     kind,
		"questions": len(questions),
	}).Info("questions imported")
	fmt.Fprintf(out, "✅ Imported %d questions into %s\n", len(questions), kind)
	return nil
}

func init() {
	importCmd.Flags().StringVar(&importStore, "store", "sqlite", "Target store: redis or sqlite")
	importCmd.Flags().BoolVar(&importReset, "reset", false, "Clear the store before importing")
}
