package soap

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteCredentials = errors.New("username, password and token must all be set")
	ErrNoEndpoint            = errors.New("inventory and rates endpoints must be set")
)

const maxErrorBody = 512

type StatusError struct {
	Code int
	Body string
}

func newStatusError(code int, body []byte) *StatusError {
	snippet := string(body)
	if len(snippet) > maxErrorBody {
		snippet = snippet[:maxErrorBody]
	}

	return &StatusError{Code: code, Body: snippet}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned status %d: %s", e.Code, e.Body)
}

func IsStatusError(err error) *StatusError {
	if err == nil {
		return nil
	}

	var statusError *StatusError

	if errors.As(err, &statusError) {
		return statusError
	}

	return nil
}
