package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMissingMarker, "MissingMarker"},
		{fmt.Errorf("%w: detail", ErrDuplicateMarker), "DuplicateMarker"},
		{ErrMarkerOrder, "MarkerOrderError"},
		{ErrNoCodeBlock, "NoCodeBlock"},
		{ErrMultipleCodeBlocks, "MultipleCodeBlocks"},
		{ErrInvalidLanguageTag, "InvalidLanguageTag"},
		{ErrNonEmptyExtraContent, "NonEmptyExtraContent"},
		{ErrInvalidJSON, "InvalidJson"},
		{ErrNotAnObject, "NotAnObject"},
		{ErrMissingRequiredField, "MissingRequiredField"},
		{ErrInvalidFieldType, "InvalidFieldType"},
		{errors.New("boom"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureKind(tt.err))
		})
	}
}
