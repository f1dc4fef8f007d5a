package clients

import (
	"encoding/json"
	"fmt"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func newStatusError(code int, body []byte) *StatusError {
	var payload struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" && len(payload.Errors) > 0 {
		message = payload.Errors[0]
	}

	return &StatusError{
		StatusCode: code,
		Message:    message,
		Body:       body,
	}
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

func (e *StatusError) HTTPStatusCode() int   { return e.StatusCode }
func (e *StatusError) ServerMessage() string { return e.Message }
func (e *StatusError) ResponseBody() []byte  { return e.Body }

func decodeJSON(body []byte, out any) error {
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	return json.Unmarshal(body, out)
}
