package imaging

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-readable category for a processing failure.
type ErrorKind string

const (
	// KindFileNotFound means the input file could not be opened or stat'd.
	KindFileNotFound ErrorKind = "file_not_found"
	// KindInvalidFormat means the input could not be decoded as an image.
	KindInvalidFormat ErrorKind = "invalid_format"
	// KindExifRead means metadata extraction failed for the file.
	KindExifRead ErrorKind = "exif_read_error"
	// KindInvalidColor means a color specification in the settings is malformed.
	KindInvalidColor ErrorKind = "invalid_color_format"
	// KindProcessing means compositing itself failed.
	KindProcessing ErrorKind = "image_processing_error"
	// KindOutput means encoding or writing the output failed.
	KindOutput ErrorKind = "output_error"
	// KindEngine means a cache or concurrency failure inside the engine.
	KindEngine ErrorKind = "engine_error"
)

// Error is a processing failure carrying a category and, when relevant,
// the file it concerns.
type Error struct {
	Kind ErrorKind
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error with a formatted message.
func NewError(kind ErrorKind, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// WrapError builds an *Error around an underlying cause.
func WrapError(kind ErrorKind, path, msg string, err error) *Error {
	return &Error{Kind: kind, Path: path, Msg: msg, Err: err}
}

// KindOf returns the category of err, or fallback when err is not a
// typed *Error.
func KindOf(err error, fallback ErrorKind) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return fallback
}
