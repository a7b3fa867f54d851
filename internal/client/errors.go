package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericErrorMessage is shown when the backend gives us nothing better.
const GenericErrorMessage = "something went wrong"

// APIError is a normalized non-2xx backend response. Message carries the
// backend validation / authorization message verbatim when one is present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%d]: %s", e.StatusCode, e.Message)
}

// errorPayload is the conventional error body shape of the backend:
// either a single message, or a list of field validation errors.
type errorPayload struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    extractMessage(body),
	}
}

func extractMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return GenericErrorMessage
	}

	if payload.Message != "" {
		return payload.Message
	}

	if len(payload.Errors) > 0 {
		msgs := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			msgs = append(msgs, e.Msg)
		}
		return strings.Join(msgs, ", ")
	}

	return GenericErrorMessage
}

// ErrorMessage extracts the user-facing message from any error coming out of
// the adapter: the backend message for API errors, the error text otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
