package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zpam/naive-classifier/pkg/classifier"
	"github.com/zpam/naive-classifier/pkg/profiler"
)

var featuresTopN int

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the most informative features",
	Long: `Train on the whole configured dataset and list the features whose
presence best separates one round from another.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(configPath, logLevel)
		if err != nil {
			return err
		}
		defer rt.Close()

		if cmd.Flags().Changed("top") {
			rt.cfg.Ranking.TopN = featuresTopN
		}

		return showFeatures(cmd.Context(), rt, cmd.OutOrStdout())
	},
}

// showFeatures writes the top-N informativeness report
func showFeatures(ctx context.Context, rt *runtime, out io.Writer) error {
	prof := profiler.NewProfiler()

	universe, sets, err := loadLabeledSets(ctx, rt, prof)
	if err != nil {
		return err
	}
	model, err := trainModel(rt, prof, universe, sets)
	if err != nil {
		return err
	}

	topN := rt.cfg.Ranking.TopN
	if topN > model.Len() {
		rt.logger.Warnf("top_n %d exceeds %d known features, showing all", topN, model.Len())
		topN = model.Len()
	}

	entries, err := model.PresentFeatures(topN)
	if err != nil {
		return fmt.Errorf("failed to rank features: %v", err)
	}

	fmt.Fprintf(out, "Most Informative Features\n")
	classifier.WriteInformativeness(out, entries)
	return nil
}

func init() {
	featuresCmd.Flags().IntVarP(&featuresTopN, "top", "n", 10, "Number of features to show")
}
