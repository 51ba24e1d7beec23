package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
)

const (
	sampleTransactions = "../../testdata/sample_transactions.csv"
	sampleBudget       = "../../testdata/sample_budget.csv"
	sampleMinimal      = "../../testdata/sample_minimal.csv"
)

func artifactNames(result *AnalysisResult) map[string]bool {
	names := make(map[string]bool)
	for _, path := range result.Artifacts {
		names[filepath.Base(path)] = true
	}
	return names
}

func TestRunFullAnalysis(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	result, err := New().Run(context.Background(), Options{
		InputPath:  sampleTransactions,
		OutputDir:  outDir,
		BudgetPath: sampleBudget,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID empty")
	}
	if result.TransactionCount != 14 {
		t.Errorf("TransactionCount = %d, expected 14", result.TransactionCount)
	}
	if result.Duration <= 0 {
		t.Error("Duration not recorded")
	}

	if result.Roles[models.RoleDate] != "TransactionDate" {
		t.Errorf("date role = %q, expected TransactionDate", result.Roles[models.RoleDate])
	}
	if result.Roles[models.RoleDescription] != "Memo" {
		t.Errorf("description role = %q, expected Memo", result.Roles[models.RoleDescription])
	}
	if result.Roles[models.RoleCategory] != "Category" {
		t.Errorf("category role = %q, expected Category", result.Roles[models.RoleCategory])
	}

	if len(result.OmittedReports) != 0 {
		t.Errorf("OmittedReports = %v, expected none with every input present", result.OmittedReports)
	}
	if len(result.FailedReports) != 0 {
		t.Errorf("FailedReports = %v, expected none", result.FailedReports)
	}

	names := artifactNames(result)
	expected := []string{
		"monthly_spending_by_category.csv",
		"year_to_date_spending_by_category.csv",
		"cumulative_spending.csv",
		"3mo_rolling_avg_by_category.csv",
		"top_10_spenders.csv",
		"monthly_total_spending.csv",
		"category_monthly_pct_change.csv",
		"largest_single_transactions.csv",
		"spending_by_merchant.csv",
		"spending_by_payment_method.csv",
		"spending_by_weekday.csv",
		"days_with_no_spending.csv",
		"recurring_payments.csv",
		"budget_comparison.csv",
		"transaction_stats_by_category.csv",
		"transaction_stats_overall.csv",
		"spending_by_weekday_weekend.csv",
		"cash_flow_analysis.csv",
		"spending_distribution_histogram.png",
		"monthly_spending_by_category.png",
		"analysis_workbook.xlsx",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("missing artifact %s", name)
		}
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("artifact %s not on disk: %v", name, err)
		}
	}
	if len(result.Artifacts) != len(expected) {
		t.Errorf("got %d artifacts, expected %d", len(result.Artifacts), len(expected))
	}
}

func TestRunOmitsReportsForAbsentInputs(t *testing.T) {
	// The minimal fixture has no category, merchant, payment method or
	// flow type columns, and no budget is supplied.
	result, err := New().Run(context.Background(), Options{
		InputPath: sampleMinimal,
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The row with an unparseable date is dropped, not fatal.
	if result.TransactionCount != 4 {
		t.Errorf("TransactionCount = %d, expected 4", result.TransactionCount)
	}

	omitted := make(map[string]bool)
	for _, name := range result.OmittedReports {
		omitted[name] = true
	}
	for _, name := range []string{"by_merchant", "by_payment_method", "budget_comparison", "cash_flow"} {
		if !omitted[name] {
			t.Errorf("report %s not omitted", name)
		}
	}

	names := artifactNames(result)
	if names["spending_by_merchant.csv"] {
		t.Error("omitted report still produced an artifact")
	}
	if !names["spending_by_weekday.csv"] {
		t.Error("unconditional report missing")
	}
}

func TestRunNoPlot(t *testing.T) {
	result, err := New().Run(context.Background(), Options{
		InputPath: sampleTransactions,
		OutputDir: t.TempDir(),
		NoPlot:    true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	names := artifactNames(result)
	if names["monthly_spending_by_category.png"] {
		t.Error("plot artifact produced despite NoPlot")
	}
	// The histogram render is not the plot the flag suppresses.
	if !names["spending_distribution_histogram.png"] {
		t.Error("histogram artifact missing")
	}
	if !names["monthly_spending_by_category.csv"] {
		t.Error("pivot table artifact missing")
	}
}

func TestRunSchemaFailureProducesNoArtifacts(t *testing.T) {
	input := filepath.Join(t.TempDir(), "undated.csv")
	content := "memo,note\ncoffee,morning\nlunch,midday\n"
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	_, err := New().Run(context.Background(), Options{
		InputPath: input,
		OutputDir: outDir,
	})
	if err == nil {
		t.Fatal("expected schema failure, got nil")
	}

	analysisErr, ok := errors.AsAnalysisError(err)
	if !ok {
		t.Fatalf("expected AnalysisError, got %T", err)
	}
	if analysisErr.Category != errors.CategorySchema {
		t.Errorf("category = %s, expected %s", analysisErr.Category, errors.CategorySchema)
	}
	if analysisErr.GetExitCode() != 1 {
		t.Errorf("exit code = %d, expected 1", analysisErr.GetExitCode())
	}

	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Error("output directory created despite fatal failure")
	}
}

func TestRunMissingInput(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		category errors.ErrorCategory
	}{
		{
			name:     "no input path",
			opts:     Options{OutputDir: "ignored"},
			category: errors.CategoryConfiguration,
		},
		{
			name:     "input file absent",
			opts:     Options{InputPath: "/nonexistent/input.csv", OutputDir: "ignored"},
			category: errors.CategoryFile,
		},
		{
			name: "budget file absent",
			opts: Options{
				InputPath:  sampleTransactions,
				BudgetPath: "/nonexistent/budget.csv",
				OutputDir:  "ignored",
			},
			category: errors.CategoryFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Run(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			analysisErr, ok := errors.AsAnalysisError(err)
			if !ok {
				t.Fatalf("expected AnalysisError, got %T", err)
			}
			if analysisErr.Category != tt.category {
				t.Errorf("category = %s, expected %s", analysisErr.Category, tt.category)
			}
		})
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, Options{
		InputPath: sampleTransactions,
		OutputDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestRunUncategorizedPivot(t *testing.T) {
	// Two calendar months, a Memo column, and no category-like column.
	// The Cloud backup charge repeats four times at the same amount.
	content := "TransactionDate,Memo,Amount\n" +
		"2024-01-03,Coffee,4.50\n" +
		"2024-01-05,Cloud backup,9.99\n" +
		"2024-01-08,Groceries,52.10\n" +
		"2024-01-12,Cloud backup,9.99\n" +
		"2024-01-15,Taxi,18.00\n" +
		"2024-01-20,Book,12.75\n" +
		"2024-01-25,Lunch,11.40\n" +
		"2024-02-02,Cloud backup,9.99\n" +
		"2024-02-05,Groceries,47.25\n" +
		"2024-02-09,Cinema,15.00\n" +
		"2024-02-11,Cloud backup,9.99\n" +
		"2024-02-17,Coffee beans,13.60\n" +
		"2024-02-21,Taxi,22.30\n" +
		"2024-02-26,Dinner,36.80\n"
	input := filepath.Join(t.TempDir(), "uncategorized.csv")
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	outDir := t.TempDir()
	result, err := New().Run(context.Background(), Options{
		InputPath: input,
		OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.TransactionCount != 14 {
		t.Errorf("TransactionCount = %d, expected 14", result.TransactionCount)
	}
	if role, ok := result.Roles[models.RoleCategory]; ok {
		t.Errorf("category role resolved to %q, expected unresolved", role)
	}

	pivot, err := os.ReadFile(filepath.Join(outDir, "monthly_spending_by_category.csv"))
	if err != nil {
		t.Fatalf("read pivot artifact: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(pivot), "\n"), "\n")
	expected := []string{
		"year_month,Uncategorized",
		"2024-01-01,118.73",
		"2024-02-01,154.93",
	}
	if len(lines) != len(expected) {
		t.Fatalf("pivot has %d lines, expected %d:\n%s", len(lines), len(expected), pivot)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("pivot line %d = %q, expected %q", i, lines[i], want)
		}
	}

	recurring, err := os.ReadFile(filepath.Join(outDir, "recurring_payments.csv"))
	if err != nil {
		t.Fatalf("read recurring artifact: %v", err)
	}
	rlines := strings.Split(strings.TrimRight(string(recurring), "\n"), "\n")
	if len(rlines) != 2 {
		t.Fatalf("recurring has %d lines, expected header and one group:\n%s", len(rlines), recurring)
	}
	if rlines[1] != "Cloud backup,9.99,4,2024-01-05,2024-02-11" {
		t.Errorf("recurring group = %q", rlines[1])
	}
}

func TestRunRecurringDetection(t *testing.T) {
	outDir := t.TempDir()
	_, err := New().Run(context.Background(), Options{
		InputPath: sampleTransactions,
		OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "recurring_payments.csv"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	// Streaming service at 15.99 appears three times across the fixture;
	// nothing else repeats often enough.
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected header and one group:\n%s", len(lines), content)
	}
	if lines[1] != "Streaming service,15.99,3,2024-01-15,2024-02-14" {
		t.Errorf("recurring group = %q", lines[1])
	}
}
