// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import "errors"

// Errors returned when encoding or decoding wire-format messages.
//
// Functions in this package wrap these errors with context using
// fmt.Errorf("...: %w", err), so use [errors.Is] to test for them.
var (
	// ErrTruncatedPacket means that a field or record extends past
	// the end of the buffer being decoded.
	ErrTruncatedPacket = errors.New("truncated DNS packet")

	// ErrCompressionLoop means that a compression pointer does not point
	// strictly backwards or that too many pointers have been followed.
	ErrCompressionLoop = errors.New("DNS name compression loop")

	// ErrReservedLabel means that a label length byte uses one of the
	// reserved 0b01 or 0b10 top-bit patterns.
	ErrReservedLabel = errors.New("reserved DNS label type")

	// ErrEncoding means that a name cannot be encoded because a label is
	// empty or longer than 63 bytes, or the whole name exceeds 255 bytes.
	ErrEncoding = errors.New("cannot encode DNS name")

	// ErrNameTooLong means that a decoded name exceeds 255 bytes on the wire.
	ErrNameTooLong = errors.New("DNS name too long")
)
