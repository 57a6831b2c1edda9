package armclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an error response from the management API. ARM
// wraps failures in an {"error": {"code", "message"}} envelope; Code is
// what downstream classification keys off.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface. The "Code: Message" shape is
// relied upon by outcome construction, which splits on the first colon.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsConflict reports whether the error indicates the partner resource is
// already linked.
func (e *APIError) IsConflict() bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	code := strings.ToLower(e.Code)
	return strings.Contains(code, "conflict") || strings.Contains(code, "alreadylinked") ||
		strings.Contains(code, "partneralready")
}

// IsAuthError reports whether the error is an authentication or
// authorization failure.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// parseAPIError decodes the ARM error envelope, falling back to the raw
// body when the envelope is absent or malformed.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Error APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr := envelope.Error
		apiErr.StatusCode = statusCode
		return &apiErr
	}

	// Some endpoints return the error object without the envelope.
	var flat APIError
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		flat.StatusCode = statusCode
		return &flat
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
