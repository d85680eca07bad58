// Package errors provides structured error types for spritter.
//
// Every failure the geometry core can produce is a validation failure of the
// input frames, not a transient fault. Each one carries a machine-readable
// [Code] so that callers (the CLI, batch runners, tests) can branch on the
// kind of failure without string matching.
//
// # Error Codes
//
// Codes are grouped by the stage that raises them:
//   - Crop and layout: NOT_SAME_SIZE, IMAGES_NOT_SAME_SIZE, ALL_IMAGES_EMPTY,
//     NO_IMAGES_TO_CROP, FRAME_TOO_LARGE
//   - Mip icons: IMAGE_NOT_SQUARE, TOO_MANY_IMAGES,
//     ODD_IMAGE_SIZE_FOR_MIP_LEVEL, WRONG_IMAGE_SIZE
//   - Input and output: INVALID_*, FILE_NOT_FOUND, OUTPUT_NOT_DIR,
//     DECODE_FAILED, ENCODE_FAILED
//
// # Usage
//
//	err := errors.New(errors.ErrCodeWrongImageSize, "source image has wrong size, %d != %d", got, want)
//	if errors.Is(err, errors.ErrCodeWrongImageSize) {
//	    // Handle malformed mip chain
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecodeFailed, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Crop and layout errors
	ErrCodeNotSameSize       Code = "NOT_SAME_SIZE"
	ErrCodeImagesNotSameSize Code = "IMAGES_NOT_SAME_SIZE"
	ErrCodeAllImagesEmpty    Code = "ALL_IMAGES_EMPTY"
	ErrCodeNoImagesToCrop    Code = "NO_IMAGES_TO_CROP"
	ErrCodeFrameTooLarge     Code = "FRAME_TOO_LARGE"

	// Mip icon errors
	ErrCodeImageNotSquare Code = "IMAGE_NOT_SQUARE"
	ErrCodeTooManyImages  Code = "TOO_MANY_IMAGES"
	ErrCodeOddImageSize   Code = "ODD_IMAGE_SIZE_FOR_MIP_LEVEL"
	ErrCodeWrongImageSize Code = "WRONG_IMAGE_SIZE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Filesystem and codec errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeOutputNotDir Code = "OUTPUT_NOT_DIR"
	ErrCodeDecodeFailed Code = "DECODE_FAILED"
	ErrCodeEncodeFailed Code = "ENCODE_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// The outermost *Error decides; a wrapped inner code does not match.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
