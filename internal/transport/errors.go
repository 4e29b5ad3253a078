package transport

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a backend call failed.
type ErrorKind int

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork ErrorKind = iota
	// KindStatus means the backend answered with a non-2xx status.
	KindStatus
	// KindDecode means a 2xx body could not be decoded as the expected JSON.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "network"
}

// TransportError is returned by every Client call that does not succeed.
type TransportError struct {
	Kind     ErrorKind
	Status   int
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
	case KindDecode:
		return fmt.Sprintf("%s: decode response: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a non-2xx TransportError.
func IsStatus(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == KindStatus
}

// IsNetwork reports whether err is a TransportError for an unreachable backend.
func IsNetwork(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == KindNetwork
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}
