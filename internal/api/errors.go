package api

import (
	"errors"
	"fmt"
)

// InvalidRequestError indicates a request URL could not be built from the
// given input, e.g. an empty student ID or an unusable base URL.
type InvalidRequestError struct {
	Reason string
	Err    error
}

func (e *InvalidRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// NetworkError indicates a transport failure or timeout before any
// response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError indicates the backend answered with a status other than 200.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server error: HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}

// DecodingError indicates the response body did not match the expected shape.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding error: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// UserMessage renders err as a message suitable for showing to a learner
// or parent.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var invalid *InvalidRequestError
	var network *NetworkError
	var server *ServerError
	var decoding *DecodingError

	switch {
	case errors.As(err, &invalid):
		return "Invalid URL configuration"
	case errors.As(err, &decoding):
		return fmt.Sprintf("Data parsing error: %v", decoding.Err)
	case errors.As(err, &server):
		if server.Body != "" {
			return fmt.Sprintf("Server error: HTTP %d: %s", server.StatusCode, server.Body)
		}
		return fmt.Sprintf("Server error: HTTP %d", server.StatusCode)
	case errors.As(err, &network):
		return fmt.Sprintf("Network error: %v", network.Err)
	default:
		return err.Error()
	}
}
