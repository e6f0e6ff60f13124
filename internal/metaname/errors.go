package metaname

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the generic client failure: the request never reached Metaname,
// came back with a non-200 status, or the response body could not be
// decoded as a JSON-RPC envelope.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("metaname: %s: %v", e.Message, e.Err)
	}
	return "metaname: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// APIError is returned when the remote API explicitly reports a failure
// through the JSON-RPC error object.
type APIError struct {
	Message string
	Code    int
	Data    any
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("metaname: %s (code %d)", e.Message, e.Code)
	}
	return "metaname: " + e.Message
}

// IsProviderError reports whether err originated from the Metaname client
// or API, as opposed to a caller bug. Only provider errors are worth
// retrying.
func IsProviderError(err error) bool {
	var ce *Error
	var ae *APIError
	return errors.As(err, &ce) || errors.As(err, &ae)
}

// IsDomainNotFound matches the error Metaname returns when listing a zone
// that does not exist in the account.
func IsDomainNotFound(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return strings.Contains(ae.Message, "Domain name not found")
	}
	return false
}
