// Package usecase contains the application use cases.
package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/runoshun/linkgen/internal/domain"
)

const categoryPipeline = "pipeline"

// PipelineInput contains the input for the Pipeline use case.
type PipelineInput struct {
	Issues []domain.RawIssue // Unfiltered issues; the active label is checked here
}

// PipelineOutput contains the output of the Pipeline use case.
// Fields are ordered to minimize memory padding.
type PipelineOutput struct {
	Groups      []domain.GroupOutput      // One collection per configured group, plus ungrouped when collected
	Records     []domain.ClassifiedRecord // Accepted records in output order
	Diagnostics []domain.Diagnostic       // Skipped active issues, sorted by issue ID
	Total       int                       // Issues seen
	Inactive    int                       // Issues without the active label
	Ungrouped   int                       // Accepted records matching no group
}

// Accepted returns the number of issues that produced a record.
func (o *PipelineOutput) Accepted() int {
	return len(o.Records)
}

// Skipped returns the number of active issues that were dropped.
func (o *PipelineOutput) Skipped() int {
	return len(o.Diagnostics)
}

// Pipeline turns raw issues into grouped link collections.
type Pipeline struct {
	logger domain.Logger
	gen    domain.GenerationConfig
}

// NewPipeline creates a new Pipeline use case.
func NewPipeline(gen domain.GenerationConfig, logger domain.Logger) *Pipeline {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Pipeline{
		gen:    gen,
		logger: logger,
	}
}

// issueResult is the outcome for one issue. Exactly one of record and diag
// is set for active issues; both are nil for inactive ones.
type issueResult struct {
	record *domain.ClassifiedRecord
	diag   *domain.Diagnostic
}

// Execute processes every issue in parallel and aggregates the results.
// Per-issue failures never fail the run; only context cancellation does.
func (uc *Pipeline) Execute(ctx context.Context, in PipelineInput) (*PipelineOutput, error) {
	results := make([]issueResult, len(in.Issues))
	groupLabels := uc.gen.GroupLabels()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(uc.gen.Concurrency, 1))
	for i := range in.Issues {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = uc.process(&in.Issues[i], groupLabels)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &PipelineOutput{Total: len(in.Issues)}
	var accepted []domain.ClassifiedRecord
	for _, r := range results {
		switch {
		case r.record != nil:
			accepted = append(accepted, *r.record)
			if len(r.record.Groups) == 0 {
				out.Ungrouped++
			}
		case r.diag != nil:
			out.Diagnostics = append(out.Diagnostics, *r.diag)
		default:
			out.Inactive++
		}
	}

	slices.SortFunc(out.Diagnostics, func(a, b domain.Diagnostic) int {
		return cmp.Compare(a.ID, b.ID)
	})
	out.Records = domain.SortRecords(accepted)
	out.Groups = domain.BuildGroups(out.Records, uc.gen)
	return out, nil
}

// process runs one issue through classification and the parse chain.
func (uc *Pipeline) process(issue *domain.RawIssue, groupLabels []string) issueResult {
	class := domain.Classify(issue.Labels, uc.gen.Label, groupLabels)
	if !class.Active {
		uc.logger.Debug(issue.Number, categoryPipeline, fmt.Sprintf("inactive, skipped %q", issue.Title))
		return issueResult{}
	}

	rec, err := domain.ParseBody(issue.Body)
	if err != nil {
		kind := domain.FailureKind(err)
		uc.logger.Warn(issue.Number, categoryPipeline, fmt.Sprintf("skipped %q: %s: %v", issue.Title, kind, err))
		return issueResult{diag: &domain.Diagnostic{
			Err:    err,
			Title:  issue.Title,
			Kind:   kind,
			ID:     issue.ID,
			Number: issue.Number,
		}}
	}

	record := *rec
	if !uc.gen.PreserveExtraFields {
		record = record.WithoutExtra()
	}
	uc.logger.Debug(issue.Number, categoryPipeline,
		fmt.Sprintf("accepted %q groups=[%s]", record.Name, strings.Join(class.Groups, ",")))

	return issueResult{record: &domain.ClassifiedRecord{
		OrderKey:    issue.OrderKey(uc.gen.SortByUpdatedTime),
		Record:      record,
		Groups:      class.Groups,
		IssueID:     issue.ID,
		IssueNumber: issue.Number,
	}}
}
