// Package pipeline orchestrates a full analysis run: load the raw table,
// infer the schema, normalize transactions, execute every report generator,
// and write the artifacts. Data flows strictly one direction; no stage
// mutates a predecessor's output.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/internal/normalizer"
	"github.com/ichoake/spend-analysis/internal/parsers"
	"github.com/ichoake/spend-analysis/internal/reports"
	"github.com/ichoake/spend-analysis/internal/schema"
	"github.com/ichoake/spend-analysis/internal/sink"
	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// Options configures a single analysis run.
type Options struct {
	// InputPath is the transactions file (CSV or xlsx). Required.
	InputPath string

	// OutputDir is the artifact destination, created if missing.
	OutputDir string

	// BudgetPath optionally supplies the budget table and enables the
	// budget comparison report.
	BudgetPath string

	// NoPlot suppresses the monthly spending chart render.
	NoPlot bool
}

// AnalysisResult summarizes a completed run: which artifacts were written
// and which reports were omitted or failed.
type AnalysisResult struct {
	RunID            string                       `json:"run_id"`
	Roles            map[models.ColumnRole]string `json:"roles"`
	TransactionCount int                          `json:"transaction_count"`
	Artifacts        []string                     `json:"artifacts"`
	OmittedReports   []string                     `json:"omitted_reports,omitempty"`
	FailedReports    []string                     `json:"failed_reports,omitempty"`
	Duration         time.Duration                `json:"duration"`
}

// Pipeline wires the analysis stages together.
type Pipeline struct {
	tables     *parsers.TableParser
	budgets    *parsers.BudgetParser
	inferencer *schema.Inferencer
	normalizer *normalizer.Normalizer
	generators []reports.Generator
	logger     logger.Logger
}

// New creates a Pipeline with default parsing and inference configuration.
func New() *Pipeline {
	parseConfig := parsers.DefaultParseConfig()
	schemaConfig := schema.DefaultConfig()
	return &Pipeline{
		tables:     parsers.NewTableParser(parseConfig),
		budgets:    parsers.NewBudgetParser(parseConfig),
		inferencer: schema.NewInferencer(schemaConfig),
		normalizer: normalizer.NewNormalizer(schemaConfig),
		generators: reports.Registry(),
		logger:     logger.GetGlobalLogger().WithComponent("pipeline"),
	}
}

// Run executes one full analysis. Fatal load and required-role schema
// failures abort with an error and produce no artifacts; per-report
// failures are recorded and never suppress the rest of the output set.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*AnalysisResult, error) {
	start := time.Now()

	if opts.InputPath == "" {
		return nil, errors.ConfigurationError(errors.CodeMissingConfig, "input_csv", nil, nil)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	table, err := p.tables.LoadTable(opts.InputPath)
	if err != nil {
		return nil, err
	}

	roles, err := p.inferencer.Infer(table)
	if err != nil {
		return nil, err
	}

	transactions := p.normalizer.Normalize(table, roles)
	if len(transactions) == 0 {
		return nil, errors.ParseError(errors.CodeEmptyInput, opts.InputPath, 0, "", nil)
	}

	var budget *models.BudgetTable
	if opts.BudgetPath != "" {
		budget, err = p.budgets.LoadBudget(opts.BudgetPath)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.InternalError(errors.CodeUnexpectedError, "analysis run", err)
	}

	dataset := reports.NewDataset(transactions, budget, roles)
	engine := reports.NewEngine(p.activeGenerators(opts))
	outcomes := engine.Run(dataset)

	out, err := sink.NewSink(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		RunID:            uuid.NewString(),
		Roles:            roles.Roles(table),
		TransactionCount: len(transactions),
	}
	p.writeArtifacts(outcomes, out, result)

	result.Duration = time.Since(start)
	p.logger.WithFields(logger.Fields{
		"run_id":       result.RunID,
		"transactions": result.TransactionCount,
		"artifacts":    len(result.Artifacts),
		"duration":     result.Duration.String(),
	}).Info("Analysis run complete")

	return result, nil
}

// activeGenerators filters the registry for this run's options.
func (p *Pipeline) activeGenerators(opts Options) []reports.Generator {
	active := make([]reports.Generator, 0, len(p.generators))
	for _, gen := range p.generators {
		if gen.Plot && opts.NoPlot {
			continue
		}
		active = append(active, gen)
	}
	return active
}

// writeArtifacts serializes every successful outcome and collects the
// consolidated workbook. Sink failures degrade like per-report failures:
// the artifact is skipped with a warning and the run continues.
func (p *Pipeline) writeArtifacts(outcomes []reports.Outcome, out *sink.Sink, result *AnalysisResult) {
	workbook := sink.NewWorkbook()
	defer workbook.Close()

	for _, outcome := range outcomes {
		switch {
		case outcome.Skipped:
			result.OmittedReports = append(result.OmittedReports, outcome.Name)
		case outcome.Err != nil:
			result.FailedReports = append(result.FailedReports, outcome.Name)
		default:
			path, err := out.Write(outcome.Result)
			if err != nil {
				p.logger.WithError(err).WithField("report", outcome.Name).
					Warn("Failed to write report artifact")
				result.FailedReports = append(result.FailedReports, outcome.Name)
				continue
			}
			result.Artifacts = append(result.Artifacts, path)
			if outcome.Result.Table != nil {
				if err := workbook.AddTable(outcome.Name, outcome.Result.Table); err != nil {
					p.logger.WithError(err).WithField("report", outcome.Name).
						Warn("Failed to add report to workbook")
				}
			}
		}
	}

	workbookPath := filepath.Join(out.Dir(), sink.WorkbookName)
	if err := workbook.Save(workbookPath); err != nil {
		p.logger.WithError(err).Warn("Failed to write consolidated workbook")
	} else if workbook.Sheets() > 0 {
		result.Artifacts = append(result.Artifacts, workbookPath)
	}
}
