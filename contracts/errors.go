package contracts

import (
	"errors"
	"fmt"
)

var (
	ErrIO         = errors.New("i/o failure")
	ErrDecode     = errors.New("decode failure")
	ErrExtraction = errors.New("extraction failure")
	ErrAddressing = errors.New("addressing failure")

	ErrNotWebWrapped = fmt.Errorf("%w: package is not a web-wrapped bundle", ErrDecode)
)

// OperationError names the failing operation and keeps both the error kind
// and the underlying cause reachable through errors.Is and errors.As.
type OperationError struct {
	Kind      error
	Operation string
	Cause     error
}

func (this *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", this.Operation, this.Cause)
}

func (this *OperationError) Unwrap() []error {
	return []error{this.Kind, this.Cause}
}

func NewIOError(operation string, cause error) error {
	return newOperationError(ErrIO, operation, cause)
}
func NewDecodeError(operation string, cause error) error {
	return newOperationError(ErrDecode, operation, cause)
}
func NewExtractionError(operation string, cause error) error {
	return newOperationError(ErrExtraction, operation, cause)
}
func NewAddressingError(operation string, cause error) error {
	return newOperationError(ErrAddressing, operation, cause)
}

func newOperationError(kind error, operation string, cause error) error {
	if cause == nil {
		cause = kind
	}
	return &OperationError{Kind: kind, Operation: operation, Cause: cause}
}
