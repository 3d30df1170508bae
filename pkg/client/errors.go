package client

import "fmt"

// APIError is a non-success reply from the server, carrying the
// envelope's message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}
