package domain

import (
	"cmp"
	"slices"
	"time"
)

// ClassifiedRecord is an accepted record together with the data needed to
// order and group it.
// Fields are ordered to minimize memory padding.
type ClassifiedRecord struct {
	OrderKey    time.Time
	Record      LinkRecord
	Groups      []string
	IssueID     int64
	IssueNumber int
}

// GroupOutput is one collection in the generated data file.
type GroupOutput struct {
	Group     string       `json:"group"`
	GroupName string       `json:"groupName"`
	GroupDesc string       `json:"groupDesc"`
	Entries   []LinkRecord `json:"entries"`
}

// SortRecords orders records by OrderKey ascending, breaking ties by issue ID.
// The input slice is not modified.
func SortRecords(records []ClassifiedRecord) []ClassifiedRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b ClassifiedRecord) int {
		if c := a.OrderKey.Compare(b.OrderKey); c != 0 {
			return c
		}
		return cmp.Compare(a.IssueID, b.IssueID)
	})
	return sorted
}

// BuildGroups partitions sorted records into the configured groups.
// A record appears once in every group it belongs to. Records without a group
// are collected into a trailing collection with an empty group label only when
// the ungrouped mode is collect.
func BuildGroups(sorted []ClassifiedRecord, gen GenerationConfig) []GroupOutput {
	out := make([]GroupOutput, 0, len(gen.Groups)+1)
	for _, g := range gen.Groups {
		entries := []LinkRecord{}
		for _, r := range sorted {
			if slices.Contains(r.Groups, g.Label) {
				entries = append(entries, r.Record)
			}
		}
		out = append(out, GroupOutput{
			Group:     g.Label,
			GroupName: g.Name,
			GroupDesc: g.Description,
			Entries:   entries,
		})
	}

	if gen.Ungrouped.Mode == UngroupedCollect {
		entries := []LinkRecord{}
		for _, r := range sorted {
			if len(r.Groups) == 0 {
				entries = append(entries, r.Record)
			}
		}
		out = append(out, GroupOutput{
			GroupName: gen.Ungrouped.Name,
			GroupDesc: gen.Ungrouped.Description,
			Entries:   entries,
		})
	}
	return out
}

// Diagnostic records why an active issue was left out of the output.
// Fields are ordered to minimize memory padding.
type Diagnostic struct {
	Err    error
	Title  string
	Kind   string
	ID     int64
	Number int
}
