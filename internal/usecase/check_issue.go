package usecase

import (
	"context"

	"github.com/runoshun/linkgen/internal/domain"
)

// CheckIssueInput contains the input for the CheckIssue use case.
type CheckIssueInput struct {
	Body string // Issue body as written by the submitter
}

// CheckIssueOutput contains the output of the CheckIssue use case.
// Exactly one of Record and Err is set.
type CheckIssueOutput struct {
	Record *domain.LinkRecord // Decoded record on success
	Err    error              // Parse failure
	Kind   string             // Failure kind name, empty on success
}

// OK reports whether the body parsed.
func (o *CheckIssueOutput) OK() bool {
	return o.Err == nil
}

// CheckIssue validates a single issue body without contacting GitHub.
type CheckIssue struct{}

// NewCheckIssue creates a new CheckIssue use case.
func NewCheckIssue() *CheckIssue {
	return &CheckIssue{}
}

// Execute parses the body. A parse failure is reported in the output, not as an error.
func (uc *CheckIssue) Execute(_ context.Context, in CheckIssueInput) (*CheckIssueOutput, error) {
	rec, err := domain.ParseBody(in.Body)
	if err != nil {
		return &CheckIssueOutput{Err: err, Kind: domain.FailureKind(err)}, nil
	}
	return &CheckIssueOutput{Record: rec}, nil
}
