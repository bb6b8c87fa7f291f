package util

import (
	"github.com/bassosimone/dnswire"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// ErrMalformedResponse is the exit code used when the response cannot be decoded.
	ErrMalformedResponse = 2

	// ErrInvalidResponse is the exit code used when the response does not match the query.
	ErrInvalidResponse = 3

	ErrGeneric = 99
)

// ExitCode returns the process exit code for err. Error codes of `flags.Error`
// objects are returned as is, decoding and validation errors have their own codes,
// and any other error maps to a generic error code - 99.
func ExitCode(err error) int {
	var flagsError *flags.Error
	switch {
	case err == nil:
		return 0
	case errors.As(err, &flagsError):
		if flagsError.Type == flags.ErrHelp {
			return 0
		}
		return int(flagsError.Type)
	case errors.Is(err, dnswire.ErrTruncatedPacket),
		errors.Is(err, dnswire.ErrCompressionLoop),
		errors.Is(err, dnswire.ErrReservedLabel),
		errors.Is(err, dnswire.ErrNameTooLong):
		return ErrMalformedResponse
	case errors.Is(err, dnswire.ErrInvalidResponse):
		return ErrInvalidResponse
	default:
		return ErrGeneric
	}
}

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit with the code given by [ExitCode].
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}
	code := ExitCode(err)
	if code != 0 {
		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
	}
	log.StandardLogger().Exit(code)
}
