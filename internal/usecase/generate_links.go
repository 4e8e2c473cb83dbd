package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/runoshun/linkgen/internal/domain"
)

const categoryGenerate = "generate"

// GenerateLinksInput contains the input for the GenerateLinks use case.
type GenerateLinksInput struct {
	DryRun bool // Render JSON into Preview instead of writing files
}

// GenerateLinksOutput contains the output of the GenerateLinks use case.
// Fields are ordered to minimize memory padding.
type GenerateLinksOutput struct {
	Result  *PipelineOutput // Grouped collections, diagnostics and counts
	RunID   string          // Identifier attached to the run's log lines
	Paths   []string        // Files written (empty on dry run)
	Preview []byte          // Rendered JSON (dry run only)
	Elapsed time.Duration   // Wall time of the run
}

// GenerateLinks fetches issues, runs the pipeline and writes the output.
type GenerateLinks struct {
	source   domain.IssueSource
	sink     domain.OutputSink
	logger   domain.Logger
	clock    domain.Clock
	pipeline *Pipeline
}

// NewGenerateLinks creates a new GenerateLinks use case.
func NewGenerateLinks(
	source domain.IssueSource,
	sink domain.OutputSink,
	gen domain.GenerationConfig,
	logger domain.Logger,
	clock domain.Clock,
) *GenerateLinks {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &GenerateLinks{
		source:   source,
		sink:     sink,
		logger:   logger,
		clock:    clock,
		pipeline: NewPipeline(gen, logger),
	}
}

// Execute runs one generation. Only source and sink failures are returned as errors;
// issues that fail to parse are reported in the output diagnostics.
func (uc *GenerateLinks) Execute(ctx context.Context, in GenerateLinksInput) (*GenerateLinksOutput, error) {
	runID := uuid.NewString()
	start := uc.clock.Now()
	uc.logger.Info(0, categoryGenerate, fmt.Sprintf("run %s started (dry-run=%t)", runID, in.DryRun))

	issues, err := uc.source.ListIssues(ctx)
	if err != nil {
		uc.logger.Error(0, categoryGenerate, fmt.Sprintf("run %s: fetch issues: %v", runID, err))
		return nil, fmt.Errorf("fetch issues: %w", err)
	}
	uc.logger.Debug(0, categoryGenerate, fmt.Sprintf("fetched %d issues", len(issues)))

	result, err := uc.pipeline.Execute(ctx, PipelineInput{Issues: issues})
	if err != nil {
		return nil, fmt.Errorf("process issues: %w", err)
	}

	out := &GenerateLinksOutput{
		Result: result,
		RunID:  runID,
	}

	if in.DryRun {
		preview, err := uc.sink.Render(domain.FormatJSON, result.Groups)
		if err != nil {
			return nil, fmt.Errorf("render output: %w", err)
		}
		out.Preview = preview
	} else {
		paths, err := uc.sink.Write(ctx, result.Groups)
		if err != nil {
			uc.logger.Error(0, categoryGenerate, fmt.Sprintf("run %s: write output: %v", runID, err))
			return nil, fmt.Errorf("write output: %w", err)
		}
		out.Paths = paths
	}

	out.Elapsed = uc.clock.Now().Sub(start)
	uc.logger.Info(0, categoryGenerate, fmt.Sprintf(
		"run %s finished in %s: %d issues, %d inactive, %d accepted, %d skipped, %d ungrouped",
		runID, out.Elapsed, result.Total, result.Inactive, result.Accepted(), result.Skipped(), result.Ungrouped))
	return out, nil
}
