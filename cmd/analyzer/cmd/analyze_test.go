package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func resetFlags(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestValidateAnalyzeFlags(t *testing.T) {
	input := writeTempFile(t, "tx.csv", "date,amount\n2024-01-03,4.50\n")
	budget := writeTempFile(t, "budget.csv", "category,budget\nFood,300\n")

	tests := []struct {
		name     string
		settings map[string]interface{}
		wantErr  string
	}{
		{
			name:     "valid with input only",
			settings: map[string]interface{}{"input_csv": input},
		},
		{
			name:     "valid with budget",
			settings: map[string]interface{}{"input_csv": input, "budget_csv": budget},
		},
		{
			name:     "missing input",
			settings: map[string]interface{}{},
			wantErr:  "input_csv is required",
		},
		{
			name:     "input does not exist",
			settings: map[string]interface{}{"input_csv": "/nonexistent/tx.csv"},
			wantErr:  "transactions file not found",
		},
		{
			name:     "budget does not exist",
			settings: map[string]interface{}{"input_csv": input, "budget_csv": "/nonexistent/budget.csv"},
			wantErr:  "budget file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			for key, value := range tt.settings {
				viper.Set(key, value)
			}

			err := validateAnalyzeFlags(analyzeCmd, nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, expected to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileExists(t *testing.T) {
	path := writeTempFile(t, "present.csv", "x\n")

	if err := validateFileExists(path, "transactions file"); err != nil {
		t.Errorf("unexpected error for existing file: %v", err)
	}

	if err := validateFileExists(filepath.Dir(path), "transactions file"); err == nil {
		t.Error("expected error for directory path")
	} else if !strings.Contains(err.Error(), "directory") {
		t.Errorf("error = %q, expected directory detail", err)
	}

	if err := validateFileExists("/nonexistent/tx.csv", "transactions file"); err == nil {
		t.Error("expected error for missing file")
	}
}
