package rle7

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind identifies the class of failure reported by the codec.
type ErrorKind int

const (
	KindOK ErrorKind = iota
	KindInvalidArgument
	KindInvalidLength
	KindInvalidPayload
	KindOutputOverflow
	KindTruncatedStream
	// KindUnknown is returned by [KindOf] for errors that didn't originate in
	// this module.
	KindUnknown
)

var errorMessagesByKind map[ErrorKind]string

func init() {
	errorMessagesByKind = make(map[ErrorKind]string, 8)
	errorMessagesByKind[KindOK] = "Success"
	errorMessagesByKind[KindInvalidArgument] = "Invalid argument"
	errorMessagesByKind[KindInvalidLength] = "Invalid length"
	errorMessagesByKind[KindInvalidPayload] = "Invalid payload byte"
	errorMessagesByKind[KindOutputOverflow] = "Output buffer overflow"
	errorMessagesByKind[KindTruncatedStream] = "Truncated stream"
	errorMessagesByKind[KindUnknown] = "Unknown error"
}

// StrError returns the default message for an error kind.
func StrError(kind ErrorKind) string {
	message, ok := errorMessagesByKind[kind]
	if ok {
		return message
	}
	return fmt.Sprintf("error kind %d not recognized.", int(kind))
}

type CodecError interface {
	error
	Kind() ErrorKind
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError ErrorKind

var ErrInvalidArgument CodecError = baseCodecError(KindInvalidArgument)
var ErrInvalidLength CodecError = baseCodecError(KindInvalidLength)
var ErrInvalidPayload CodecError = baseCodecError(KindInvalidPayload)
var ErrOutputOverflow CodecError = baseCodecError(KindOutputOverflow)
var ErrTruncatedStream CodecError = baseCodecError(KindTruncatedStream)

func (e baseCodecError) Error() string {
	return StrError(ErrorKind(e))
}

func (e baseCodecError) Kind() ErrorKind {
	return ErrorKind(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		kind:          ErrorKind(e),
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		kind:          ErrorKind(e),
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	kind          ErrorKind
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) Kind() ErrorKind {
	return e.kind
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		kind:          e.kind,
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		kind:          e.kind,
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}

// KindOf returns the kind of the first [CodecError] in err's chain. It returns
// [KindOK] for a nil error and [KindUnknown] if there's no CodecError in the
// chain at all.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindOK
	}

	var codecErr CodecError
	if errors.As(err, &codecErr) {
		return codecErr.Kind()
	}
	return KindUnknown
}
