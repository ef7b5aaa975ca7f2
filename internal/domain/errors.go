package domain

import "fmt"

// FeedErrorKind classifies why a feed fetch failed.
type FeedErrorKind string

const (
	FeedErrorNetwork FeedErrorKind = "network"
	FeedErrorStatus  FeedErrorKind = "status"
	FeedErrorPayload FeedErrorKind = "payload"
)

// FeedError reports a failed or malformed feed fetch.
type FeedError struct {
	Kind       FeedErrorKind
	URL        string
	StatusCode int // set for FeedErrorStatus
	Err        error
}

func (e *FeedError) Error() string {
	if e.Kind == FeedErrorStatus {
		return fmt.Sprintf("feed %s: %s: status %d: %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("feed %s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FeedError) Unwrap() error { return e.Err }

// FeatureError reports a feature missing a field required to build a marker.
type FeatureError struct {
	ID    string
	Index int
	Field string
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature %d (%q): missing %s", e.Index, e.ID, e.Field)
}
