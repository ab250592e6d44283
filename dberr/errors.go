// Package dberr defines the error taxonomy shared by the execution core and
// its collaborators. Every failure a statement can surface is one of these
// kinds, carrying the offending identifier where one exists.
package dberr

import (
	"errors"
	"fmt"
)

type Kind int32

const (
	Routing Kind = iota
	TransactionState
	UnknownColumn
	UnknownTable
	LockTimeout
	Deadlock
	ConstraintViolation
	Storage
)

func (k Kind) String() string {
	switch k {
	case Routing:
		return "RoutingError"
	case TransactionState:
		return "TransactionStateError"
	case UnknownColumn:
		return "UnknownColumnError"
	case UnknownTable:
		return "UnknownTableError"
	case LockTimeout:
		return "LockTimeoutError"
	case Deadlock:
		return "DeadlockError"
	case ConstraintViolation:
		return "ConstraintViolationError"
	case Storage:
		return "StorageError"
	default:
		return "UnknownError"
	}
}

type Error struct {
	kind  Kind
	ident string
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.ident != "" {
		return fmt.Sprintf("%s: %s (%s)", e.kind, e.msg, e.ident)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Kind() Kind    { return e.kind }
func (e *Error) Ident() string { return e.ident }
func (e *Error) Unwrap() error { return e.cause }

func NewRouting(msg string) *Error {
	return &Error{kind: Routing, msg: msg}
}

func NewTransactionState(msg string) *Error {
	return &Error{kind: TransactionState, msg: msg}
}

func NewUnknownColumn(column string) *Error {
	return &Error{kind: UnknownColumn, ident: column, msg: "column does not exist"}
}

func NewUnknownTable(table string) *Error {
	return &Error{kind: UnknownTable, ident: table, msg: "table does not exist"}
}

func NewLockTimeout(resource string) *Error {
	return &Error{kind: LockTimeout, ident: resource, msg: "lock wait timed out"}
}

func NewDeadlock(resource string) *Error {
	return &Error{kind: Deadlock, ident: resource, msg: "deadlock detected"}
}

func NewConstraintViolation(ident string, msg string) *Error {
	return &Error{kind: ConstraintViolation, ident: ident, msg: msg}
}

func NewStorage(cause error, msg string) *Error {
	return &Error{kind: Storage, msg: msg, cause: cause}
}

// KindOf classifies an arbitrary error. Errors produced outside the taxonomy
// (collaborator I/O failures and the like) classify as Storage.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Storage
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}
