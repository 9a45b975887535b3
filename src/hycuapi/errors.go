package hycuapi

import "fmt"

// TransportError covers connection, DNS, TLS and timeout failures.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return "request " + e.URL + ": " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError is returned for any non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	// Body holds the start of the response body, for diagnostics.
	Body string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s: HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx response is not a valid envelope.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string { return "decode " + e.URL + ": " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }
