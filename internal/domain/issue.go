package domain

import (
	"slices"
	"time"
)

// RawIssue is an issue as delivered by the issue source.
// It is read-only input for one pipeline run.
// Fields are ordered to minimize memory padding.
type RawIssue struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Body      string
	URL       string
	Labels    []string
	ID        int64
	Number    int
}

// HasLabel reports whether the issue carries the given label.
func (i RawIssue) HasLabel(label string) bool {
	return slices.Contains(i.Labels, label)
}

// OrderKey returns the timestamp used to order records built from this issue.
func (i RawIssue) OrderKey(byUpdated bool) time.Time {
	if byUpdated {
		return i.UpdatedAt
	}
	return i.CreatedAt
}
