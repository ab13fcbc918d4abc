package extraction

import "fmt"

// TransportError indicates the extraction service call itself failed
// (network error, non-2xx status, empty response). The underlying error is
// preserved for logging; only a summary should reach end users.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calling extraction service: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indicates the service responded, but its text was
// not parseable as the expected JSON shape after fence stripping. Raw holds
// the full original response for diagnosis.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("parsing extraction response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
