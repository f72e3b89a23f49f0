package services

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Handlers match these with errors.Is to pick
// the HTTP status; everything else is a 500.
var (
	// ErrUnsupportedFormat: the upload's extension/MIME matches no
	// extractor. Fatal for the request, no format guessing.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInsufficientContent: extraction produced too little text to
	// send to a provider.
	ErrInsufficientContent = errors.New("insufficient text content in document")

	// ErrEmptyProviderResponse: the provider call succeeded at the
	// transport level but returned no text payload.
	ErrEmptyProviderResponse = errors.New("empty provider response")

	// ErrUnparsableResponse: the provider payload could not be parsed
	// into the schema contract.
	ErrUnparsableResponse = errors.New("unparsable provider response")

	// ErrAllProvidersExhausted: every configured provider failed; the
	// wrapped error is the last underlying failure.
	ErrAllProvidersExhausted = errors.New("all providers exhausted")
)

// ProviderError carries the provider's HTTP status so the retry loop
// can tell transient failures from fatal ones.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Transient reports whether the error is worth retrying: rate limit or
// service unavailable.
func (e *ProviderError) Transient() bool {
	return e.StatusCode == 429 || e.StatusCode == 503
}

// IsTransient reports whether err is a retryable provider failure.
func IsTransient(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient()
}
