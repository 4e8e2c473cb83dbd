package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/linkgen/internal/domain"
	"github.com/runoshun/linkgen/internal/testutil"
	"github.com/runoshun/linkgen/internal/usecase"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dataBody(payload string) string {
	return "Please add my site.\n\n<!-- DATA_START -->\n```json\n" + payload + "\n```\n<!-- DATA_END -->\n"
}

func linkBody(name string) string {
	return dataBody(fmt.Sprintf(`{"name": %q, "url": "https://%s.example"}`, name, name))
}

// newIssue creates an issue created day days after baseTime.
func newIssue(id int64, day int, body string, labels ...string) domain.RawIssue {
	return domain.RawIssue{
		CreatedAt: baseTime.AddDate(0, 0, day),
		UpdatedAt: baseTime.AddDate(0, 0, day),
		Title:     fmt.Sprintf("issue %d", id),
		Body:      body,
		URL:       fmt.Sprintf("https://github.com/octo/friends/issues/%d", id),
		Labels:    labels,
		ID:        id,
		Number:    int(id),
	}
}

func testGeneration() domain.GenerationConfig {
	return domain.GenerationConfig{
		Label:               "active",
		Concurrency:         4,
		PreserveExtraFields: true,
		Ungrouped:           domain.UngroupedConfig{Mode: domain.UngroupedOmit, Name: "Others"},
		Groups: []domain.GroupConfig{
			{Name: "Friends", Description: "Blogs of friends", Label: "group:friends"},
			{Name: "Tools", Description: "Useful tools", Label: "group:tools"},
		},
	}
}

func entryNames(g domain.GroupOutput) []string {
	names := make([]string, 0, len(g.Entries))
	for _, e := range g.Entries {
		names = append(names, e.Name)
	}
	return names
}

func TestPipeline_Execute(t *testing.T) {
	// Setup
	issues := []domain.RawIssue{
		newIssue(5, 3, linkBody("carol"), "active", "group:friends"),
		newIssue(2, 1, linkBody("alice"), "active", "group:friends", "group:tools"),
		newIssue(9, 2, linkBody("bob"), "active", "group:tools"),
		newIssue(7, 0, linkBody("inactive"), "group:friends"),
	}
	logger := &testutil.MockLogger{}

	// Execute
	out, err := usecase.NewPipeline(testGeneration(), logger).Execute(context.Background(), usecase.PipelineInput{Issues: issues})

	// Verify
	require.NoError(t, err)
	require.Len(t, out.Groups, 2)

	assert.Equal(t, "group:friends", out.Groups[0].Group)
	assert.Equal(t, "Friends", out.Groups[0].GroupName)
	assert.Equal(t, "Blogs of friends", out.Groups[0].GroupDesc)
	assert.Equal(t, []string{"alice", "carol"}, entryNames(out.Groups[0]))

	assert.Equal(t, "group:tools", out.Groups[1].Group)
	assert.Equal(t, []string{"alice", "bob"}, entryNames(out.Groups[1]))

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 1, out.Inactive)
	assert.Equal(t, 3, out.Accepted())
	assert.Equal(t, 0, out.Skipped())
	assert.Equal(t, 0, out.Ungrouped)

	debug := logger.ByLevel("DEBUG")
	require.NotEmpty(t, debug)
	assert.Empty(t, logger.ByLevel("WARN"))
}

func TestPipeline_Execute_Diagnostics(t *testing.T) {
	// Setup
	issues := []domain.RawIssue{
		newIssue(40, 0, dataBody(`{"name": "A"}`), "active"),
		newIssue(10, 0, "no data here", "active"),
		newIssue(30, 0, dataBody(`{"name": "A", "url": "https://a.example"`), "active"),
		newIssue(20, 0, "<!-- DATA_START --><!-- DATA_START --><!-- DATA_END -->", "active"),
		newIssue(50, 0, "no data, but inactive"),
		newIssue(60, 0, linkBody("ok"), "active", "group:friends"),
	}
	logger := &testutil.MockLogger{}

	// Execute
	out, err := usecase.NewPipeline(testGeneration(), logger).Execute(context.Background(), usecase.PipelineInput{Issues: issues})

	// Verify
	require.NoError(t, err)
	require.Len(t, out.Diagnostics, 4)

	var ids []int64
	var kinds []string
	for _, d := range out.Diagnostics {
		ids = append(ids, d.ID)
		kinds = append(kinds, d.Kind)
		assert.Error(t, d.Err)
		assert.Equal(t, fmt.Sprintf("issue %d", d.ID), d.Title)
	}
	assert.Equal(t, []int64{10, 20, 30, 40}, ids)
	assert.Equal(t, []string{"MissingMarker", "DuplicateMarker", "InvalidJson", "MissingRequiredField"}, kinds)
	assert.ErrorIs(t, out.Diagnostics[0].Err, domain.ErrMissingMarker)

	assert.Equal(t, []string{"ok"}, entryNames(out.Groups[0]))
	assert.Equal(t, 1, out.Inactive)

	warns := logger.ByLevel("WARN")
	assert.Len(t, warns, 4)
	for _, w := range warns {
		assert.Equal(t, "pipeline", w.Category)
		assert.NotZero(t, w.Issue)
	}
}

func TestPipeline_Execute_SortByCreatedTime(t *testing.T) {
	issues := []domain.RawIssue{
		newIssue(3, 2, linkBody("third"), "active", "group:friends"),
		newIssue(2, 1, linkBody("tie-b"), "active", "group:friends"),
		newIssue(1, 1, linkBody("tie-a"), "active", "group:friends"),
		newIssue(4, 0, linkBody("first"), "active", "group:friends"),
	}
	// Updated order is the reverse of created order.
	for i := range issues {
		issues[i].UpdatedAt = baseTime.AddDate(0, 0, 10-int(issues[i].ID))
	}

	gen := testGeneration()
	out, err := usecase.NewPipeline(gen, nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "tie-a", "tie-b", "third"}, entryNames(out.Groups[0]))

	gen.SortByUpdatedTime = true
	out, err = usecase.NewPipeline(gen, nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third", "tie-b", "tie-a"}, entryNames(out.Groups[0]))
}

func TestPipeline_Execute_Ungrouped(t *testing.T) {
	issues := []domain.RawIssue{
		newIssue(1, 0, linkBody("grouped"), "active", "group:friends"),
		newIssue(2, 1, linkBody("loner"), "active"),
		newIssue(3, 2, linkBody("both"), "active", "group:friends", "group:tools"),
	}

	t.Run("omit", func(t *testing.T) {
		out, err := usecase.NewPipeline(testGeneration(), nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
		require.NoError(t, err)

		require.Len(t, out.Groups, 2)
		assert.Equal(t, []string{"grouped", "both"}, entryNames(out.Groups[0]))
		assert.Equal(t, []string{"both"}, entryNames(out.Groups[1]))
		assert.Equal(t, 1, out.Ungrouped)
		assert.Equal(t, 3, out.Accepted())
	})

	t.Run("collect", func(t *testing.T) {
		gen := testGeneration()
		gen.Ungrouped = domain.UngroupedConfig{Mode: domain.UngroupedCollect, Name: "Others", Description: "Everything else"}

		out, err := usecase.NewPipeline(gen, nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
		require.NoError(t, err)

		require.Len(t, out.Groups, 3)
		last := out.Groups[2]
		assert.Empty(t, last.Group)
		assert.Equal(t, "Others", last.GroupName)
		assert.Equal(t, "Everything else", last.GroupDesc)
		assert.Equal(t, []string{"loner"}, entryNames(last))
	})
}

func TestPipeline_Execute_ExtraFields(t *testing.T) {
	issues := []domain.RawIssue{
		newIssue(1, 0, dataBody(`{"name": "A", "url": "https://a.example", "tags": ["go"], "avatar": "https://a.example/a.png"}`), "active", "group:friends"),
	}

	out, err := usecase.NewPipeline(testGeneration(), nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
	require.NoError(t, err)
	rec := out.Groups[0].Entries[0]
	require.Len(t, rec.Extra, 1)
	assert.Equal(t, "tags", rec.Extra[0].Key)
	require.NotNil(t, rec.Avatar)
	assert.Equal(t, "https://a.example/a.png", *rec.Avatar)

	gen := testGeneration()
	gen.PreserveExtraFields = false
	out, err = usecase.NewPipeline(gen, nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
	require.NoError(t, err)
	rec = out.Groups[0].Entries[0]
	assert.Empty(t, rec.Extra)
	assert.NotNil(t, rec.Avatar)
}

func TestPipeline_Execute_Idempotent(t *testing.T) {
	var issues []domain.RawIssue
	for i := 1; i <= 60; i++ {
		labels := []string{"active"}
		switch i % 3 {
		case 0:
			labels = append(labels, "group:friends")
		case 1:
			labels = append(labels, "group:tools", "group:friends")
		}
		body := linkBody(fmt.Sprintf("site%02d", i))
		if i%7 == 0 {
			body = "broken"
		}
		issues = append(issues, newIssue(int64(i), i%5, body, labels...))
	}

	gen := testGeneration()
	gen.Ungrouped.Mode = domain.UngroupedCollect
	first, err := usecase.NewPipeline(gen, nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
	require.NoError(t, err)

	gen.Concurrency = 1
	second, err := usecase.NewPipeline(gen, nil).Execute(context.Background(), usecase.PipelineInput{Issues: issues})
	require.NoError(t, err)

	if diff := cmp.Diff(first.Groups, second.Groups); diff != "" {
		t.Errorf("output differs between runs (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first.Groups)
	require.NoError(t, err)
	b, err := json.Marshal(second.Groups)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Skipped(), second.Skipped())
}

func TestPipeline_Execute_Empty(t *testing.T) {
	out, err := usecase.NewPipeline(testGeneration(), nil).Execute(context.Background(), usecase.PipelineInput{})

	require.NoError(t, err)
	require.Len(t, out.Groups, 2)
	for _, g := range out.Groups {
		assert.NotNil(t, g.Entries)
		assert.Empty(t, g.Entries)
	}
	assert.Zero(t, out.Total)
}

func TestPipeline_Execute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := usecase.NewPipeline(testGeneration(), nil).Execute(ctx, usecase.PipelineInput{
		Issues: []domain.RawIssue{newIssue(1, 0, linkBody("a"), "active")},
	})

	assert.ErrorIs(t, err, context.Canceled)
}
