package domain

import "errors"

// Issue body validation errors.
// Each one is scoped to a single issue and never aborts a run.
var (
	ErrMissingMarker        = errors.New("missing DATA_START or DATA_END marker")
	ErrDuplicateMarker      = errors.New("multiple DATA_START or DATA_END markers")
	ErrMarkerOrder          = errors.New("DATA_END marker precedes DATA_START marker")
	ErrNoCodeBlock          = errors.New("no code block in data section")
	ErrMultipleCodeBlocks   = errors.New("multiple code blocks in data section")
	ErrInvalidLanguageTag   = errors.New("code block language must be json")
	ErrNonEmptyExtraContent = errors.New("data section contains content outside the code block")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrNotAnObject          = errors.New("JSON value is not an object")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidFieldType     = errors.New("invalid field type")
)

// Configuration and collaborator errors.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrConfigExists      = errors.New("config file already exists")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrMissingRepository = errors.New("github owner/repository not configured and not detectable from git remote")
	ErrNotGitRepository  = errors.New("not a git repository (or any of the parent directories)")
	ErrNoOriginRemote    = errors.New("no origin remote")
)

// failureKinds maps validation errors to their stable names used in diagnostics.
var failureKinds = []struct {
	err  error
	name string
}{
	{ErrMissingMarker, "MissingMarker"},
	{ErrDuplicateMarker, "DuplicateMarker"},
	{ErrMarkerOrder, "MarkerOrderError"},
	{ErrNoCodeBlock, "NoCodeBlock"},
	{ErrMultipleCodeBlocks, "MultipleCodeBlocks"},
	{ErrInvalidLanguageTag, "InvalidLanguageTag"},
	{ErrNonEmptyExtraContent, "NonEmptyExtraContent"},
	{ErrInvalidJSON, "InvalidJson"},
	{ErrNotAnObject, "NotAnObject"},
	{ErrMissingRequiredField, "MissingRequiredField"},
	{ErrInvalidFieldType, "InvalidFieldType"},
}

// FailureKind returns the diagnostic name for a validation error.
// Errors outside the validation taxonomy return "Unknown".
func FailureKind(err error) string {
	for _, k := range failureKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
