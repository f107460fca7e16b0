package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/usermanager/internal/common"
)

var ErrInvalidBaseURL = errors.New("invalid API base URL")

// RequestFailure is returned by every HTTPClient method that did not get a
// 2xx response with a decodable body.
type RequestFailure struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int

	// Message is the backend's structured "error" field, verbatim.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *RequestFailure) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode == 0 && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("request failed with status code %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("request failed with status code %d", e.StatusCode)
	}
}

func (e *RequestFailure) Unwrap() error { return e.Err }

// ServerMessage extracts the backend's message from err, if it carries one.
func ServerMessage(err error) (string, bool) {
	var rf *RequestFailure
	if errors.As(err, &rf) && rf.Message != "" {
		return rf.Message, true
	}
	return "", false
}

// errorResponse is the backend's error body.
type errorResponse struct {
	Error string `json:"error"`
}

// parseErrorResponse turns a non-2xx response into a *RequestFailure.
// It returns nil for 2xx statuses.
func parseErrorResponse(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	rf := &RequestFailure{StatusCode: status}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		rf.Message = er.Error
	}

	if status == http.StatusNotFound {
		rf.Err = common.ErrNotFound
	}
	return rf
}
