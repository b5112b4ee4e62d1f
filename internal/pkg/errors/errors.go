// Package errors decorates audit errors with the location that raised them
// and tags them with the kinds listed in kinds.go.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// Wrap adds msg and the caller location to err. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s \ncaused by: %w", located(msg), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// located appends the location of the function that called into this
// package. It must be called directly from an exported helper.
func located(msg string) string {
	return msg + " " + callerAt(3)
}

func callerAt(skip int) string {
	pc, f, l, ok := runtime.Caller(skip)
	fn := `unknown`
	if ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	return fmt.Sprintf("at %s\n\t%s:%d", fn, f, l)
}
