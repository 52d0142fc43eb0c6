package errors

import (
	"errors"
	"strings"
)

type multiError []error

func (e multiError) Error() string {
	var r strings.Builder
	r.WriteString("multierr: ")
	for i, err := range e {
		if i > 0 {
			r.WriteString(" | ")
		}
		r.WriteString(err.Error())
	}
	return r.String()
}

// Unwrap exposes the wrapped errors to errors.Is and errors.As.
func (e multiError) Unwrap() []error {
	return []error(e)
}

// Combine collapses multiple errors into one, skipping nils.
// Returns nil if every error is nil.
func Combine(maybeError ...error) error {
	var errs multiError
	for _, err := range maybeError {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AllEqual reports whether every error in actual matches expected.
func AllEqual(expected error, actual error) bool {
	switch errs := actual.(type) {
	case multiError:
		if len(errs) == 0 {
			return false
		}
		for _, err := range errs {
			if !errors.Is(err, expected) {
				return false
			}
		}
		return true
	default:
		return errors.Is(errs, expected)
	}
}
