package beams

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPError represents a non-2xx response from the device API
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

func readHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}

	// The device API reports {"error": "...", "description": "..."}
	var apiErr struct {
		Error       string `json:"error"`
		Description string `json:"description"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		msg := apiErr.Error
		if apiErr.Description != "" {
			msg += ": " + apiErr.Description
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(body)}
}
