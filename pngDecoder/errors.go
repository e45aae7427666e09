package pngDecoder

import (
	"errors"
	"fmt"

	"github.com/shoccho/pnGo/oops"
)

// Kind classifies why a decode failed. Every failed decode carries exactly one.
type Kind int

const (
	FileUnreadable Kind = iota + 1
	NotRecognizedFormat
	UnsupportedFormat
	CorruptOrTruncated
	DecompressionFailed
)

var (
	ErrFileUnreadable      = errors.New("file unreadable")
	ErrNotRecognizedFormat = errors.New("not a png file")
	ErrUnsupportedFormat   = errors.New("unsupported png format")
	ErrCorruptOrTruncated  = errors.New("corrupt or truncated png")
	ErrDecompressionFailed = errors.New("decompression failed")
)

func (k Kind) String() string {
	switch k {
	case FileUnreadable:
		return "FileUnreadable"
	case NotRecognizedFormat:
		return "NotRecognizedFormat"
	case UnsupportedFormat:
		return "UnsupportedFormat"
	case CorruptOrTruncated:
		return "CorruptOrTruncated"
	case DecompressionFailed:
		return "DecompressionFailed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case FileUnreadable:
		return ErrFileUnreadable
	case NotRecognizedFormat:
		return ErrNotRecognizedFormat
	case UnsupportedFormat:
		return ErrUnsupportedFormat
	case CorruptOrTruncated:
		return ErrCorruptOrTruncated
	case DecompressionFailed:
		return ErrDecompressionFailed
	}
	return nil
}

// DecodeError is the only error type returned by the decode functions.
// errors.Is matches both the sentinel for its Kind and the underlying cause.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "png: " + e.Kind.sentinel().Error()
	}
	return "png: " + e.Kind.sentinel().Error() + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newError(kind Kind, cause error, format string, args ...interface{}) error {
	return &DecodeError{
		Kind: kind,
		Err:  oops.New(cause, format, args...),
	}
}

// KindOf reports the failure kind of err, or 0 if err did not come from a decode.
func KindOf(err error) Kind {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Kind
	}
	return 0
}
