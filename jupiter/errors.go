package jupiter

import (
	"fmt"
	"strings"
)

// HTTPError is a non-success response from the service. The status code and
// body are captured verbatim; error bodies commonly do not share the shape of
// the success type, so no reinterpretation is attempted.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("jupiter http %d", e.StatusCode)
	}
	return fmt.Sprintf("jupiter http %d: %s", e.StatusCode, b)
}

// DecodeResponseError is a success-status response whose body failed to
// decode into the expected type.
type DecodeResponseError struct {
	Endpoint string
	Err      error
}

func (e *DecodeResponseError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeResponseError) Unwrap() error { return e.Err }
