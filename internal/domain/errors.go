package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing entity (train, booking, ...).
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ReferenceExhaustedError means no unique booking reference could be drawn
// within the retry budget. The booking attempt aborts with no state written;
// callers may simply retry.
type ReferenceExhaustedError struct {
	Attempts int
}

func (e ReferenceExhaustedError) Error() string {
	return fmt.Sprintf("unable to allocate a unique booking reference after %d attempts", e.Attempts)
}

// PaymentDeclinedError: the account exists but holds too little balance.
// No ledger state changes when this is returned.
type PaymentDeclinedError struct {
	Account string
	Short   int64
}

func (e PaymentDeclinedError) Error() string {
	return fmt.Sprintf("insufficient balance, need %d more", e.Short)
}

// AccountNotFoundError covers both payment and refund account lookups.
type AccountNotFoundError struct {
	Account string
}

func (e AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %q not found", e.Account)
}

// AlreadyCancelledError rejects a second cancellation of the same booking,
// so seats are never double-freed and refunds never doubled.
type AlreadyCancelledError struct {
	PNR int64
}

func (e AlreadyCancelledError) Error() string {
	return fmt.Sprintf("booking %d is already cancelled", e.PNR)
}

// StorageError wraps transaction-boundary failures (begin/commit or a store
// that went away mid-operation). The operation is fully rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Op == "" {
		return "storage unavailable"
	}
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsReferenceExhausted(err error) bool {
	var target ReferenceExhaustedError
	return errors.As(err, &target)
}

func IsPaymentDeclined(err error) bool {
	var target PaymentDeclinedError
	return errors.As(err, &target)
}

func IsAccountNotFound(err error) bool {
	var target AccountNotFoundError
	return errors.As(err, &target)
}

func IsAlreadyCancelled(err error) bool {
	var target AlreadyCancelledError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}
