package glpi

import (
	"errors"
	"fmt"
)

// AuthError is returned when GLPI rejects the credentials (401/403) or the
// session could not be opened at all.
type AuthError struct {
	Op         string
	StatusCode int
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("glpi: authentication failed during %s (status=%d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("glpi: authentication failed during %s", e.Op)
}

// NetworkError is returned for connection level failures. Timeout is set when
// the call exceeded its connect or read deadline.
type NetworkError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("glpi: timeout during %s", e.Op)
	}
	return fmt.Sprintf("glpi: network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SearchError is returned for any other non-2xx or malformed response.
type SearchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("glpi: search failed during %s (status=%d)", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("glpi: search failed during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("glpi: search failed during %s", e.Op)
}

func (e *SearchError) Unwrap() error { return e.Err }

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsNetwork reports whether err is a NetworkError, timeouts included.
func IsNetwork(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsTimeout reports whether err is a NetworkError caused by a timeout.
func IsTimeout(err error) bool {
	var e *NetworkError
	return errors.As(err, &e) && e.Timeout
}

// IsSearch reports whether err is a SearchError.
func IsSearch(err error) bool {
	var e *SearchError
	return errors.As(err, &e)
}

// Classify returns typed GLPI failures unchanged and wraps anything else in a
// generic SearchError tagged with op.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsAuth(err) || IsNetwork(err) || IsSearch(err) {
		return err
	}
	return &SearchError{Op: op, Err: err}
}
