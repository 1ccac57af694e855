package wua

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by Open on hosts without Windows Update.
var ErrUnsupportedPlatform = errors.New("windows update agent is not available on this platform")

// ServiceError is a failure reported by the update service.
type ServiceError struct {
	Op      string // e.g. "create session", "search", "query history"
	HResult uint32
	Err     error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	if e.HResult != 0 {
		if _, known := knownHResults[e.HResult]; known {
			msg += " (" + FormatHResult(e.HResult) + ")"
		}
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapErr tags err with the failing operation and any HRESULT found in it.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	hr, _ := HResultFromError(err)
	return &ServiceError{Op: op, HResult: hr, Err: err}
}
