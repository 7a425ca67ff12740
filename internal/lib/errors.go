package lib

import (
	"errors"
	"fmt"
)

var (
	BadUserInputError         = errors.New("bad user input")
	MissingConfigurationError = errors.New("missing configuration")
)

// InvalidPayloadError reports a field an upstream API response was expected to carry but did not.
type InvalidPayloadError struct {
	MissingKey string
	Operation  string
}

func NewInvalidPayloadError(missingKey, operation string) *InvalidPayloadError {
	return &InvalidPayloadError{MissingKey: missingKey, Operation: operation}
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("unexpected payload received, missing %q from %q call response", e.MissingKey, e.Operation)
}
