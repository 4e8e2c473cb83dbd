package domain

import (
	"fmt"
	"strings"
)

// Data section markers. They are matched literally.
const (
	MarkerStart = "<!-- DATA_START -->"
	MarkerEnd   = "<!-- DATA_END -->"
)

// ScanRegion returns the text strictly between the DATA_START and DATA_END
// markers of an issue body.
//
// Each marker must appear exactly once and DATA_START must come first.
// Duplicates are reported before missing markers, so a body with two
// DATA_START markers and no DATA_END is a duplicate error.
func ScanRegion(body string) (string, error) {
	starts := strings.Count(body, MarkerStart)
	ends := strings.Count(body, MarkerEnd)

	if starts > 1 || ends > 1 {
		return "", fmt.Errorf("%w: found %d DATA_START and %d DATA_END", ErrDuplicateMarker, starts, ends)
	}
	if starts == 0 || ends == 0 {
		return "", fmt.Errorf("%w: found %d DATA_START and %d DATA_END", ErrMissingMarker, starts, ends)
	}

	startIdx := strings.Index(body, MarkerStart)
	endIdx := strings.Index(body, MarkerEnd)
	regionStart := startIdx + len(MarkerStart)
	if endIdx <= startIdx || endIdx < regionStart {
		return "", ErrMarkerOrder
	}

	return body[regionStart:endIdx], nil
}
