package reports

import (
	"fmt"

	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"

	"github.com/ichoake/spend-analysis/internal/models"
)

// Generator is one registered report: a name, a fixed artifact file name,
// an optional presence condition, and a pure generation function.
type Generator struct {
	Name     string
	FileName string

	// Plot marks the optional interactive-style chart render that the
	// --no-plot flag suppresses.
	Plot bool

	// Condition gates conditional reports (merchant, payment method,
	// cash flow, budget). A nil Condition always runs. When the condition
	// is false the report is omitted entirely, not emitted empty.
	Condition func(*Dataset) bool

	Generate func(*Dataset) (*models.ReportResult, error)
}

// Outcome records what happened to one generator during a run.
type Outcome struct {
	Name       string
	Result     *models.ReportResult
	Err        *errors.AnalysisError
	Skipped    bool
	SkipReason string
}

// Engine runs a set of generators against a shared dataset with per-report
// failure isolation: an error or panic in one generator skips that report
// with a logged warning and the run continues.
type Engine struct {
	generators []Generator
	logger     logger.Logger
}

// NewEngine creates an Engine over the given generators.
func NewEngine(generators []Generator) *Engine {
	return &Engine{
		generators: generators,
		logger:     logger.GetGlobalLogger().WithComponent("report_engine"),
	}
}

// Run executes every generator sequentially against the dataset and returns
// one outcome per generator, in registry order.
func (e *Engine) Run(ds *Dataset) []Outcome {
	outcomes := make([]Outcome, 0, len(e.generators))
	tracker := logger.NewProgressTracker(logger.ProgressConfig{
		Operation: "generate reports",
		Total:     int64(len(e.generators)),
		Logger:    e.logger,
	})

	for _, gen := range e.generators {
		outcomes = append(outcomes, e.runOne(gen, ds))
		tracker.Increment()
	}
	tracker.Complete()

	return outcomes
}

func (e *Engine) runOne(gen Generator, ds *Dataset) (outcome Outcome) {
	outcome = Outcome{Name: gen.Name}
	log := e.logger.WithField("report", gen.Name)

	if gen.Condition != nil && !gen.Condition(ds) {
		outcome.Skipped = true
		outcome.SkipReason = "required input absent"
		log.Info("Report omitted: required input absent")
		return outcome
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Result = nil
			outcome.Err = errors.ReportError(errors.CodeReportFailed, gen.Name,
				fmt.Errorf("panic: %v", r))
			log.WithError(outcome.Err).Warn("Report generator panicked; skipping report")
		}
	}()

	result, err := gen.Generate(ds)
	if err != nil {
		outcome.Err = errors.WrapIfNeeded(err, errors.CategoryReport, errors.CodeReportFailed,
			fmt.Sprintf("report '%s' failed to generate", gen.Name))
		log.WithError(outcome.Err).Warn("Report generator failed; skipping report")
		return outcome
	}

	outcome.Result = result
	log.Debug("Report generated")
	return outcome
}

// Failures returns the error summary for a set of outcomes.
func Failures(outcomes []Outcome) *errors.ErrorSummary {
	var errs []*errors.AnalysisError
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.NewErrorSummary(errs)
}
