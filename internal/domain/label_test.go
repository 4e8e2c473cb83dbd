package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	groups := []string{"group:friends", "group:tech"}

	tests := []struct {
		name   string
		labels []string
		want   Classification
	}{
		{
			name:   "no labels",
			labels: nil,
			want:   Classification{},
		},
		{
			name:   "group label without active label",
			labels: []string{"group:friends"},
			want:   Classification{},
		},
		{
			name:   "active without groups",
			labels: []string{"active"},
			want:   Classification{Active: true},
		},
		{
			name:   "active with one group",
			labels: []string{"group:tech", "active"},
			want:   Classification{Active: true, Groups: []string{"group:tech"}},
		},
		{
			name:   "groups follow configured order",
			labels: []string{"group:tech", "active", "group:friends", "bug"},
			want:   Classification{Active: true, Groups: []string{"group:friends", "group:tech"}},
		},
		{
			name:   "label match is case-sensitive",
			labels: []string{"Active", "group:friends"},
			want:   Classification{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.labels, "active", groups)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_DuplicateGroupLabels(t *testing.T) {
	got := Classify([]string{"active", "g"}, "active", []string{"g", "g"})

	assert.Equal(t, []string{"g"}, got.Groups)
}
