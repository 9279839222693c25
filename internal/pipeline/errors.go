package pipeline

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes pipeline failures.
type ErrorCode string

const (
	// ErrCodeTransport indicates a dataset download failed. Fatal: the run
	// aborts and no manifest is written.
	ErrCodeTransport ErrorCode = "TRANSPORT"

	// ErrCodeMalformedInput indicates a source document is not a well-formed
	// array of objects. Fatal for that dataset.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// ErrCodeRecordDecode indicates a single element failed to decode. The
	// element is skipped and counted; the run continues.
	ErrCodeRecordDecode ErrorCode = "RECORD_DECODE"

	// ErrCodeMissingJoinKey indicates an oracle id referenced by one dataset
	// is absent from the other. The affected entity gets an empty price
	// summary; the run continues.
	ErrCodeMissingJoinKey ErrorCode = "MISSING_JOIN_KEY"

	// ErrCodeBudgetViolation indicates a single record's own serialized size
	// exceeds a file budget. The record is still emitted alone in its own
	// group rather than dropped.
	ErrCodeBudgetViolation ErrorCode = "BUDGET_VIOLATION"
)

// Error is a categorized pipeline error. Dataset names the bulk dataset
// being processed when the error occurred ("oracle_cards", "default_cards",
// "spellbook").
type Error struct {
	Code    ErrorCode
	Message string
	Dataset string
	Err     error
}

func (e *Error) Error() string {
	var msg string
	if e.Dataset != "" {
		msg = fmt.Sprintf("%s: %s (dataset=%s)", e.Code, e.Message, e.Dataset)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError creates a fatal download error.
func NewTransportError(dataset, message string, err error) *Error {
	return &Error{Code: ErrCodeTransport, Message: message, Dataset: dataset, Err: err}
}

// NewMalformedInputError creates a fatal structural error for a dataset.
func NewMalformedInputError(dataset, message string, err error) *Error {
	return &Error{Code: ErrCodeMalformedInput, Message: message, Dataset: dataset, Err: err}
}

// IsTransport reports whether err is a transport error.
// Uses errors.As to handle wrapped errors.
func IsTransport(err error) bool {
	return hasCode(err, ErrCodeTransport)
}

// IsMalformedInput reports whether err is a malformed-input error.
func IsMalformedInput(err error) bool {
	return hasCode(err, ErrCodeMalformedInput)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
