package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable marks a required data source (training corpus,
	// knowledge base, catalog, model artifact) as missing or unreadable.
	// Fatal at construction time, never surfaced per request.
	ErrDataUnavailable = errors.New("data unavailable")

	ErrInvalidInput = errors.New("invalid input")
	ErrTemporary    = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
