package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zpam/naive-classifier/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Generate and validate classifier configuration files`,
}

var configGenCmd = &cobra.Command{
	Use:   "generate [config-file]",
	Short: "Generate default configuration file",
	Long:  `Generate a configuration file holding every option at its default value`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) > 0 {
			path = args[0]
		}

		// Check if file already exists
		if _, err := os.Stat(path); err == nil {
			overwrite, _ := cmd.Flags().GetBool("force")
			if !overwrite {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
		}

		if err := config.DefaultConfig().SaveConfig(path); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration file generated: %s\n", path)
		fmt.Fprintf(out, "🚀 Use 'naive run --config %s' to use the configuration\n", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate configuration file",
	Long:  `Validate a configuration file for syntax and logical errors`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(args[0])
		if err != nil {
			return fmt.Errorf("❌ Configuration validation failed: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration is valid: %s\n", args[0])

		if warnings := validateConfigLogic(cfg); len(warnings) > 0 {
			fmt.Fprintf(out, "\n⚠️  Warnings:\n")
			for _, warning := range warnings {
				fmt.Fprintf(out, "  - %s\n", warning)
			}
		}

		fmt.Fprintf(out, "\n📊 Configuration Summary:\n")
		fmt.Fprintf(out, "  Dataset source: %s\n", cfg.Dataset.Source)
		fmt.Fprintf(out, "  Labels: %d\n", len(cfg.Labels))
		fmt.Fprintf(out, "  Train ratio: %.2f\n", cfg.Evaluation.TrainRatio)
		fmt.Fprintf(out, "  Accuracy limit: %d\n", cfg.Evaluation.AccuracyLimit)
		fmt.Fprintf(out, "  Top features: %d\n", cfg.Ranking.TopN)
		return nil
	},
}

// validateConfigLogic reports settings that are valid but probably unintended
func validateConfigLogic(cfg *config.Config) []string {
	var warnings []string

	if len(cfg.Labels) == 1 {
		warnings = append(warnings, "Only one label configured - every prediction will be the same")
	}
	if cfg.Evaluation.TrainRatio < 0.5 {
		warnings = append(warnings, "Less than half of the dataset is used for training")
	}
	if cfg.Evaluation.AccuracyLimit == 0 {
		warnings = append(warnings, "accuracy_limit is 0 - every held-out question will be scored")
	}
	if cfg.Evaluation.MaxConcurrent > 64 {
		warnings = append(warnings, "High concurrency setting might impact performance")
	}

	return warnings
}

func init() {
	configCmd.AddCommand(configGenCmd)
	configCmd.AddCommand(configValidateCmd)

	configGenCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
