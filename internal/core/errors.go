package core

import (
	"errors"
	"fmt"
)

// ErrKind classifies domain errors so the HTTP adapter can map them to status
// codes without string matching. All kinds are recoverable at the request
// boundary; none are fatal to the process.
type ErrKind int

const (
	// KindNotFound — the referenced product/service/appointment/order does not exist.
	KindNotFound ErrKind = iota + 1
	// KindInvalidArgument — malformed operation, quantity, transaction type, or status.
	KindInvalidArgument
	// KindInsufficientStock — a deduction would drive a product quantity negative.
	KindInsufficientStock
	// KindConflict — double-booked slot, duplicate feedback, or a forbidden transition.
	KindConflict
)

// DomainError is the error type returned by core services for expected
// business failures. Infrastructure failures are plain wrapped errors.
type DomainError struct {
	Kind    ErrKind
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is lets errors.Is match two DomainErrors by kind.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if errors.As(target, &de) {
		return de.Kind == e.Kind
	}
	return false
}

func NotFoundf(format string, args ...any) error {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgumentf(format string, args ...any) error {
	return &DomainError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStockf(format string, args ...any) error {
	return &DomainError{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrKind of err, or 0 if err is not a DomainError.
// It unwraps, so services may annotate domain errors with fmt.Errorf("...: %w", err).
func KindOf(err error) ErrKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// IsNotFound reports whether err is (or wraps) a NotFound domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInsufficientStock reports whether err is (or wraps) an InsufficientStock domain error.
func IsInsufficientStock(err error) bool { return KindOf(err) == KindInsufficientStock }
