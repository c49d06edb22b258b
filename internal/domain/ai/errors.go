package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ProviderError is a transport or provider-side failure (network error,
// timeout, non-2xx). Transient; callers may retry with backoff.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "provider: " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError means the model reply failed the required-field
// contract. Not retried automatically, and never downgraded to defaults:
// a defaulted summary would look like a real one.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string { return "malformed response: " + e.Reason }
