// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a business failure so the request layer can choose a
// transport status without parsing messages.
type ErrorKind string

const (
	// KindValidation marks requests rejected before any mutation.
	KindValidation ErrorKind = "validation"
	// KindNotFound marks lookups for absent items, allocations or groups.
	KindNotFound ErrorKind = "not_found"
	// KindConflict marks state conflicts such as insufficient stock.
	KindConflict ErrorKind = "conflict"
	// KindStoreFailure marks unexpected store errors after which the whole
	// atomic unit has been rolled back.
	KindStoreFailure ErrorKind = "store_failure"
)

// Error codes used across the stock engine.
const (
	CodeInvalidItem        = "invalid_item"
	CodeInvalidItemType    = "invalid_item_type"
	CodeInvalidAllocation  = "invalid_allocation"
	CodeInvalidSale        = "invalid_sale"
	CodeInvalidSaleGroup   = "invalid_sale_group"
	CodeRetailExceedsTotal = "retail_exceeds_total"
	CodeInsufficientStock  = "insufficient_stock"
	CodeItemNotFound       = "item_not_found"
	CodeItemTypeNotFound   = "item_type_not_found"
	CodeItemTypeInUse      = "item_type_in_use"
	CodeAllocationNotFound = "allocation_not_found"
	CodeEntryNotFound      = "ledger_entry_not_found"
	CodeGroupNotFound      = "sale_group_not_found"
	CodeStoreFailure       = "store_failure"
)

// Error is a classified business error.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation builds a validation error.
func NewValidation(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound builds a not-found error.
func NewNotFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewConflict builds a conflict error.
func NewConflict(code, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewStoreFailure wraps an unexpected store error.
func NewStoreFailure(msg string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Code: CodeStoreFailure, Message: msg, Err: err}
}

// KindOf extracts the classification of err. Unclassified errors (including
// raw store and context errors) report KindStoreFailure.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStoreFailure
}

// CodeOf extracts the error code of err, or the empty string.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
