package services

import (
	"errors"
)

var (
	// ErrInvalidInput: the action was rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable wraps document-store failures; the whole action
	// fails and nothing downstream of the failed write is recorded.
	ErrStoreUnavailable = errors.New("stats store unavailable")
)

func storeErr(err error) error {
	return errors.Join(ErrStoreUnavailable, err)
}
