package fetcher

import (
	"fmt"
)

// NetworkError reports a failed fetch. StatusCode is zero when no response
// was received.
type NetworkError struct {
	Locator    string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Locator, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a payload that is not a decodable image.
type DecodeError struct {
	// Kind is the sniffed file type, empty when unknown.
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("decode image (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
