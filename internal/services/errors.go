package services

import "fmt"

// ConfigError means a server-side credential is missing. Fatal to the
// request, never to the process.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// UpstreamError is a non-2xx answer from the completion API. The status
// code is forwarded to the caller verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

// TimeoutError means the upstream call exceeded the hard deadline.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string { return e.Message }

// BadGatewayError covers an unreachable upstream or an upstream answer
// the relay could not interpret.
type BadGatewayError struct {
	Message string
}

func (e *BadGatewayError) Error() string { return e.Message }
