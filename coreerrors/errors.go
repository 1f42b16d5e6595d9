// Package coreerrors enumerates the error kinds the block-validation
// core can raise, adapted from the node's network error envelope.
package coreerrors

import (
	"github.com/icryptix/core/jsonx"
)

// Code identifies a class of core error.
type Code string

const (
	// ErrCodeTruncated: a reader ran past the end of the buffer.
	ErrCodeTruncated Code = "truncated"
	// ErrCodeInvalidUtf8: a VarLenString's bytes are not valid UTF-8.
	ErrCodeInvalidUtf8 Code = "invalid_utf8"
	// ErrCodeMalformedBlock: a constructor received the wrong shape of input.
	ErrCodeMalformedBlock Code = "malformed_block"
	// ErrCodeValidationFailed: a Block.Verify/IsSuccessorOf rule failed.
	ErrCodeValidationFailed Code = "validation_failed"
	// ErrCodeLockedAccess: privateKey was read while a KeyPair is Locked.
	ErrCodeLockedAccess Code = "locked_access"
	// ErrCodeWrongKey: unlock was called with a key that does not match.
	ErrCodeWrongKey Code = "wrong_key"
	// ErrCodePolicyViolation: a serialized size exceeded a policy bound.
	ErrCodePolicyViolation Code = "policy_violation"
)

// CoreError is the typed error for the kinds above: truncated or
// non-UTF-8 input (serial), malformed blocks (block) and lock-state
// faults (keypair). Other errors, such as hashid's decode-length error
// or keypair's already-locked error, are not CoreErrors. Validation rule
// failures are reported as a bool, not an error — see block.Block.Verify.
type CoreError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface, matching the teacher's
// NetworkError.Error which serializes the struct rather than formatting it.
func (e *CoreError) Error() string {
	out, marshalErr := jsonx.Marshal(CoreError{Code: e.Code, Message: e.Message})
	if marshalErr != nil {
		return string(e.Code) + ": " + e.Message
	}
	return string(out)
}

// New constructs a CoreError.
func New(code Code, message string) error {
	return &CoreError{Code: code, Message: message}
}

// Is reports whether err is a CoreError with the given code.
func Is(err error, code Code) bool {
	ce, ok := err.(*CoreError)
	return ok && ce.Code == code
}
