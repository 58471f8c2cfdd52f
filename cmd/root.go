package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "naive",
	Short: "Naive Bayes classifier for Jeopardy! rounds",
	Long: `naive trains a naive-independence classifier on labeled Jeopardy! questions
and predicts which round a question was asked in.

Training is re-run on every invocation; no model is persisted.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("naive - Jeopardy! round classifier")
		fmt.Println("Use 'naive --help' for usage information")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured logging level")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
}
