// Package rerr defines an error taxonomy for the retrieval and ingestion
// pipelines: a small set of kinds plus sentinel-style helpers for
// constructing them. No package in this module constructs these errors,
// and internal/httpapi does not map them: it answers 400 for its own
// input checks and 500 "search failed" for any search error.
package rerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the purpose of HTTP status mapping and
// logging. Only errors that propagate out of a stage carry a Kind; stages
// with a declared fallback never construct one.
type Kind string

const (
	// InputInvalid marks a user-caused 400: empty query, malformed upload.
	InputInvalid Kind = "input_invalid"

	// EmbeddingFailure marks a failed encode call on the critical path.
	EmbeddingFailure Kind = "embedding_failure"

	// VectorStoreFailure marks a failed ANN query.
	VectorStoreFailure Kind = "vector_store_failure"

	// CandidateScoringFailure marks a failure while fusing candidate scores.
	CandidateScoringFailure Kind = "candidate_scoring_failure"

	// CacheFailure marks a cache malfunction. Never surfaced to callers;
	// present only so a cache bug can be logged with a stable tag.
	CacheFailure Kind = "cache_failure"
)

// Error is a typed error carrying a Kind and a user-safe detail string.
// Internal causes are wrapped but never included in Detail.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs an Error of the given kind with a user-visible detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap constructs an Error of the given kind, attaching cause for logging
// while keeping detail as the only string ever shown to a caller.
func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
