package cdp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnconfigured          = errors.New("cdp credentials not configured")
	ErrSourceAbsent          = errors.New("credential source not present")
	ErrKeyFileMalformed      = errors.New("cdp key file is malformed")
	ErrIncompleteCredentials = errors.New("key id or private key missing")

	ErrMissingKeyName       = errors.New("key name is empty")
	ErrMissingPrivateKey    = errors.New("private key is empty")
	ErrMissingRequestTarget = errors.New("request method or path is empty")
	ErrUnsupportedCurve     = errors.New("private key is not on curve P-256")

	ErrMissingToken = errors.New("response does not contain a session token")
)

// maxDiagnosticBodyLength bounds the upstream body echoed into diagnostics.
const maxDiagnosticBodyLength = 512

// SourceError records why a single credential source did not produce credentials.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// UnconfiguredError is returned by the resolver when no source yielded usable credentials.
// It matches ErrUnconfigured and every error of its attempts via errors.Is.
type UnconfiguredError struct {
	Attempts []*SourceError
}

func (e *UnconfiguredError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrUnconfigured.Error()
	}

	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}

	return fmt.Sprintf("%v (%s)", ErrUnconfigured, strings.Join(parts, "; "))
}

func (e *UnconfiguredError) Is(target error) bool {
	return target == ErrUnconfigured
}

func (e *UnconfiguredError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a)
	}
	return errs
}

// SigningError is returned when an assertion cannot be signed with the configured key material.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign cdp assertion: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// RemoteError describes a failed call to the CDP token endpoint. StatusCode is 0 if no
// response was received (transport error, timeout, cancellation).
type RemoteError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("cdp token request failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("cdp token endpoint returned unusable response (status %d): %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("cdp token endpoint returned status %d: %s", e.StatusCode, truncate(e.Body, maxDiagnosticBodyLength))
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
