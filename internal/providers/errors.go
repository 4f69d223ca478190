// Package providers holds the clients for the external JSON APIs and the
// failure taxonomy they share.
package providers

import (
	"errors"
	"fmt"
)

// Kind classifies why an external fetch failed
type Kind int

const (
	// KindNetwork covers transport errors and non-200 responses
	KindNetwork Kind = iota + 1
	// KindParse covers bodies that are not the expected JSON document
	KindParse
)

var (
	ErrNetwork = errors.New("network failure")
	ErrParse   = errors.New("parse failure")
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_failure"
	case KindParse:
		return "parse_failure"
	default:
		return "unknown"
	}
}

// FetchError is returned by every provider client
type FetchError struct {
	Provider   string
	Kind       Kind
	StatusCode int // Set when the upstream answered with a non-200 status
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNetwork) and errors.Is(err, ErrParse) match on Kind
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func NetworkError(provider string, err error) error {
	return &FetchError{Provider: provider, Kind: KindNetwork, Err: err}
}

func StatusError(provider string, statusCode int, body string) error {
	return &FetchError{
		Provider:   provider,
		Kind:       KindNetwork,
		StatusCode: statusCode,
		Err:        fmt.Errorf("fetch returned status %d: %s", statusCode, body),
	}
}

func ParseError(provider string, err error) error {
	return &FetchError{Provider: provider, Kind: KindParse, Err: err}
}

// KindOf returns the Kind of the first FetchError in err's chain, or 0
func KindOf(err error) Kind {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return 0
}
