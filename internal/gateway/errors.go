package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrBaseURLRequired  = errors.New("gateway: base url is required")
	ErrPathRequired     = errors.New("gateway: resource path is required")
	ErrIDRequired       = errors.New("gateway: record id is required")
	ErrPageInvalid      = errors.New("gateway: page must be >= 1")
	ErrPageSizeInvalid  = errors.New("gateway: page size must be > 0")
	ErrRequestFailed    = errors.New("gateway: request failed")
	ErrValidationFailed = errors.New("gateway: validation failed")
	ErrRecordNotFound   = errors.New("gateway: record not found")
	ErrResponseInvalid  = errors.New("gateway: response body invalid")
)

// genericFailureMessage is the user-facing fallback when the backend returns a
// body without a parseable message field.
const genericFailureMessage = "Request failed"

// RequestError reports a transport or HTTP-level failure. Message carries the
// backend's message field when one was present, the generic fallback otherwise.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e == nil {
		return ErrRequestFailed.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status=%d message=%s", ErrRequestFailed.Error(), e.StatusCode, e.displayMessage())
	}
	return fmt.Sprintf("%s: %s", ErrRequestFailed.Error(), e.displayMessage())
}

func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}

func (e *RequestError) displayMessage() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return genericFailureMessage
}

// ValidationError reports a 4xx rejection carrying a field-level complaint the
// presentation layer can surface next to the form.
type ValidationError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrValidationFailed.Error()
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), msg)
	}
	return ErrValidationFailed.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NotFoundError reports an operation against a record the backend no longer
// has. Callers treat it as non-fatal and refresh the list.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrRecordNotFound.Error()
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %s/%s", ErrRecordNotFound.Error(), e.Resource, e.Key)
	}
	return fmt.Sprintf("%s: %s", ErrRecordNotFound.Error(), e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// DisplayMessage extracts the user-facing string for an error following the
// taxonomy above, falling back to the generic message for unknown errors.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.displayMessage()
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if msg := strings.TrimSpace(valErr.Message); msg != "" {
			return msg
		}
		return genericFailureMessage
	}
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return nfErr.Error()
	}
	return err.Error()
}

// errorBody is the backend's failure envelope. Every field is optional; an
// unparseable body never crashes the client.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func errorFromResponse(resource string, key string, status int, body []byte) error {
	parsed := errorBody{}
	_ = json.Unmarshal(body, &parsed)

	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Resource: resource, Key: key}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return &ValidationError{
			StatusCode: status,
			Message:    parsed.Message,
			Fields:     parsed.Errors,
		}
	default:
		return &RequestError{
			StatusCode: status,
			Message:    parsed.Message,
		}
	}
}
