package errs

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists is the sentinel returned (via Unwrap) by AlreadyExistsError.
var ErrAlreadyExists = errors.New("object already exists")

// AlreadyExistsError reports that creating an object would break a uniqueness rule.
type AlreadyExistsError struct {
	ParamName string
	Cause     error
}

func NewAlreadyExistsError(paramName string) *AlreadyExistsError {
	return &AlreadyExistsError{ParamName: paramName}
}

func NewAlreadyExistsErrorWithCause(paramName string, cause error) *AlreadyExistsError {
	return &AlreadyExistsError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *AlreadyExistsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrAlreadyExists, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAlreadyExists, e.ParamName)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}
