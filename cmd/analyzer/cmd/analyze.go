package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ichoake/spend-analysis/cmd/analyzer/config"
	"github.com/ichoake/spend-analysis/internal/pipeline"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// Flags for the analyze command
var (
	inputCSV  string
	outputDir string
	budgetCSV string
	noPlot    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a transaction spreadsheet and generate spending reports",
	Long: `Analyze infers the schema of a transaction spreadsheet and generates
the full report set: monthly spending by category, year-to-date summary,
cumulative spend, rolling averages, top spenders, recurring payments,
no-spend days, distribution statistics and more.

The input needs no fixed schema: column roles are inferred from content and
name heuristics. Only a date column and an amount column are required;
everything else degrades gracefully.

Examples:
  # Basic analysis into the current directory
  analyzer analyze --input_csv transactions.csv

  # Write artifacts elsewhere and skip the chart render
  analyzer analyze --input_csv transactions.csv --output_dir reports --no-plot

  # Enable the budget comparison report
  analyzer analyze --input_csv tx.csv --budget_csv budget.csv`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&inputCSV, "input_csv", "i", "", "path to transactions file (required)")
	analyzeCmd.Flags().StringVarP(&outputDir, "output_dir", "o", ".", "directory to save output artifacts")
	analyzeCmd.Flags().StringVar(&budgetCSV, "budget_csv", "", "optional budget file, enables the budget comparison report")
	analyzeCmd.Flags().BoolVar(&noPlot, "no-plot", false, "do not render the monthly spending chart")

	analyzeCmd.MarkFlagRequired("input_csv")

	viper.BindPFlag("input_csv", analyzeCmd.Flags().Lookup("input_csv"))
	viper.BindPFlag("output_dir", analyzeCmd.Flags().Lookup("output_dir"))
	viper.BindPFlag("budget_csv", analyzeCmd.Flags().Lookup("budget_csv"))
	viper.BindPFlag("no-plot", analyzeCmd.Flags().Lookup("no-plot"))
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	// Viper values allow overrides from config file and environment.
	inputCSV = viper.GetString("input_csv")
	outputDir = viper.GetString("output_dir")
	budgetCSV = viper.GetString("budget_csv")
	noPlot = viper.GetBool("no-plot")

	if inputCSV == "" {
		return fmt.Errorf("input_csv is required")
	}
	if err := validateFileExists(inputCSV, "transactions file"); err != nil {
		return err
	}
	if budgetCSV != "" {
		if err := validateFileExists(budgetCSV, "budget file"); err != nil {
			return err
		}
	}

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log, err := logger.NewLogger(config.CreateLoggerConfig(viper.GetBool("verbose")))
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(log)

	handler := NewCLIErrorHandler()

	result, err := pipeline.New().Run(context.Background(), pipeline.Options{
		InputPath:  inputCSV,
		OutputDir:  outputDir,
		BudgetPath: budgetCSV,
		NoPlot:     noPlot,
	})
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	printRunSummary(result)
	return nil
}

func printRunSummary(result *pipeline.AnalysisResult) {
	fmt.Printf("Analyzed %d transactions (run %s)\n", result.TransactionCount, result.RunID)
	fmt.Println("Generated reports:")
	for _, path := range result.Artifacts {
		fmt.Printf("- %s\n", path)
	}
	if len(result.OmittedReports) > 0 {
		fmt.Printf("Omitted (input absent): %d\n", len(result.OmittedReports))
	}
	if len(result.FailedReports) > 0 {
		fmt.Printf("Skipped after errors: %d\n", len(result.FailedReports))
	}
}

func validateFileExists(path, description string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s not found: %s", description, path)
		}
		return fmt.Errorf("cannot access %s %s: %w", description, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file: %s", description, path)
	}
	return nil
}
