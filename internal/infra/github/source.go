// Package github reads submission issues through the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v72/github"

	"github.com/runoshun/linkgen/internal/domain"
)

// pageSize is the largest page the issues endpoint accepts.
const pageSize = 100

// Ensure Source implements domain.IssueSource interface.
var _ domain.IssueSource = (*Source)(nil)

// Source lists the issues of one repository.
type Source struct {
	client *github.Client
	owner  string
	repo   string
	state  string
}

// NewSource creates a Source for cfg.Owner/cfg.Repository.
// httpClient may be nil to use http.DefaultClient.
func NewSource(cfg domain.GitHubConfig, httpClient *http.Client) (*Source, error) {
	if cfg.Owner == "" || cfg.Repository == "" {
		return nil, domain.ErrMissingRepository
	}

	client := github.NewClient(httpClient)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	if cfg.APIURL != "" {
		base := cfg.APIURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github.api_url: %w", err)
		}
		client.BaseURL = u
	}

	state := cfg.State
	if state == "" {
		state = domain.DefaultIssueState
	}

	return &Source{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repository,
		state:  state,
	}, nil
}

// ListIssues fetches every issue page by page. Pull requests are skipped.
func (s *Source) ListIssues(ctx context.Context) ([]domain.RawIssue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       s.state,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var issues []domain.RawIssue
	for {
		page, resp, err := s.client.Issues.ListByRepo(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues of %s/%s: %w", s.owner, s.repo, err)
		}
		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, toRawIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

func toRawIssue(issue *github.Issue) domain.RawIssue {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	return domain.RawIssue{
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		URL:       issue.GetHTMLURL(),
		Labels:    labels,
		ID:        issue.GetID(),
		Number:    issue.GetNumber(),
	}
}
