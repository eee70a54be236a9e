package pipeline

import "errors"

// Terminal failure classes for one analysis request. Every failed run wraps
// exactly one of these; there are no retries within a request.
var (
	// ErrInvalidURL means the input is not a recognizable video URL.
	ErrInvalidURL = errors.New("invalid video URL")

	// ErrMediaUnavailable means no configured source produced the media.
	ErrMediaUnavailable = errors.New("media unavailable")

	// ErrModelInvocation means the upload or generation call failed.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrEmptyResponse means the model completed but returned no usable text.
	ErrEmptyResponse = errors.New("model returned an empty response")
)
