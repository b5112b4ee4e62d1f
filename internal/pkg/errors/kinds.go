package errors

import (
	"errors"
	"fmt"
)

// Error kinds raised during an audit run. Callers match them with Is.
var (
	ErrInputFileMissing = errors.New("input file does not exist")
	ErrMalformedRow     = errors.New("malformed row")
	ErrInvalidURL       = errors.New("invalid url")
	ErrFetch            = errors.New("failed to fetch page")
	ErrInvalidInput     = errors.New("invalid input")
)

// Kind tags msg with one of the error kinds above.
func Kind(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, located(msg))
}

// WrapKind tags err with kind while keeping err in the chain, so both
// Is(result, kind) and Is(result, err) hold.
func WrapKind(kind error, err error, msg string) error {
	return fmt.Errorf("%w: %s \ncaused by: %w", kind, located(msg), err)
}
