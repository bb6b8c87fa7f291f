// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the fixed DNS message header.
const HeaderSize = 12

// Header flag bits (RFC 1035 section 4.1.1 and RFC 4035 section 3.2.3).
const (
	FlagResponse           = 1 << 15
	FlagAuthoritative      = 1 << 10
	FlagTruncated          = 1 << 9
	FlagRecursionDesired   = 1 << 8
	FlagRecursionAvailable = 1 << 7
	FlagAuthenticData      = 1 << 5
)

// Response codes we map to errors in [ResponseErrorFromRCODE].
const (
	RcodeSuccess       = 0
	RcodeServerFailure = 2
	RcodeNameError     = 3
)

// Header is the fixed-size DNS message header.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// EncodeHeader serializes h to its 12 bytes wire format.
func EncodeHeader(h Header) []byte {
	out := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(out[0:2], h.ID)
	binary.BigEndian.PutUint16(out[2:4], h.Flags)
	binary.BigEndian.PutUint16(out[4:6], h.QDCount)
	binary.BigEndian.PutUint16(out[6:8], h.ANCount)
	binary.BigEndian.PutUint16(out[8:10], h.NSCount)
	binary.BigEndian.PutUint16(out[10:12], h.ARCount)
	return out
}

// DecodeHeader parses the header at the beginning of msg.
func DecodeHeader(msg []byte) (Header, error) {
	if len(msg) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncatedPacket, HeaderSize, len(msg))
	}
	h := Header{
		ID:      binary.BigEndian.Uint16(msg[0:2]),
		Flags:   binary.BigEndian.Uint16(msg[2:4]),
		QDCount: binary.BigEndian.Uint16(msg[4:6]),
		ANCount: binary.BigEndian.Uint16(msg[6:8]),
		NSCount: binary.BigEndian.Uint16(msg[8:10]),
		ARCount: binary.BigEndian.Uint16(msg[10:12]),
	}
	return h, nil
}

// Response returns whether the QR bit is set.
func (h Header) Response() bool {
	return h.Flags&FlagResponse != 0
}

// Opcode returns the 4-bit opcode.
func (h Header) Opcode() int {
	return int(h.Flags>>11) & 0x0F
}

// Authoritative returns whether the AA bit is set.
func (h Header) Authoritative() bool {
	return h.Flags&FlagAuthoritative != 0
}

// Truncated returns whether the TC bit is set.
func (h Header) Truncated() bool {
	return h.Flags&FlagTruncated != 0
}

// RecursionDesired returns whether the RD bit is set.
func (h Header) RecursionDesired() bool {
	return h.Flags&FlagRecursionDesired != 0
}

// RecursionAvailable returns whether the RA bit is set.
func (h Header) RecursionAvailable() bool {
	return h.Flags&FlagRecursionAvailable != 0
}

// Rcode returns the 4-bit response code.
func (h Header) Rcode() int {
	return int(h.Flags & 0x0F)
}
