// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"fmt"
	"strings"
)

const (
	// MaxLabelLength is the maximum length of a single label (RFC 1035 section 2.3.4).
	MaxLabelLength = 63

	// MaxNameLength is the maximum wire length of a name, including
	// length bytes and the terminating zero byte.
	MaxNameLength = 255

	// MaxPointerDepth is the maximum number of compression pointers
	// followed while decoding a single name.
	MaxPointerDepth = 10
)

const (
	labelKindMask    = 0xC0
	labelKindPointer = 0xC0
	labelKindNormal  = 0x00
)

// EncodeName encodes a dotted domain name into the wire format, i.e.,
// a sequence of length-prefixed labels terminated by a zero byte.
//
// A single trailing dot is accepted and ignored. The root name, written
// either as "" or ".", encodes as a single zero byte.
func EncodeName(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return []byte{0}, nil
	}
	out := make([]byte, 0, len(name)+2)
	for _, label := range strings.Split(name, ".") {
		if len(label) < 1 {
			return nil, fmt.Errorf("%w: %q: empty label", ErrEncoding, name)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: %q: label longer than %d bytes", ErrEncoding, name, MaxLabelLength)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0)
	if len(out) > MaxNameLength {
		return nil, fmt.Errorf("%w: %q: longer than %d bytes", ErrEncoding, name, MaxNameLength)
	}
	return out, nil
}

// DecodeName decodes the name starting at offset off inside msg.
//
// Compression pointers are followed only backwards: each pointer must
// refer to an offset strictly lower than the start of the labels run
// containing it (hence lower than the pointer's own offset), and at
// most [MaxPointerDepth] pointers are followed. The returned offset is
// the one following the name as encoded at off, that is, just past the
// first compression pointer when the name is compressed.
//
// The returned name does not have a trailing dot and the root name
// is returned as the empty string.
func DecodeName(msg []byte, off int) (string, int, error) {
	if off < 0 {
		return "", 0, fmt.Errorf("%w: negative offset %d", ErrTruncatedPacket, off)
	}
	var (
		labels  []string
		cursor  = off
		start   = off // beginning of the current run of labels
		next    = -1 // offset after the first pointer, once followed
		depth   = 0
		wireLen = 1 // terminating zero byte
	)
	for {
		if cursor >= len(msg) {
			return "", 0, fmt.Errorf("%w: name length byte at offset %d", ErrTruncatedPacket, cursor)
		}
		length := int(msg[cursor])

		switch length & labelKindMask {
		case labelKindPointer:
			if cursor+1 >= len(msg) {
				return "", 0, fmt.Errorf("%w: compression pointer at offset %d", ErrTruncatedPacket, cursor)
			}
			target := (length&^labelKindMask)<<8 | int(msg[cursor+1])
			if target >= start {
				return "", 0, fmt.Errorf("%w: pointer at offset %d refers to offset %d", ErrCompressionLoop, cursor, target)
			}
			depth++
			if depth > MaxPointerDepth {
				return "", 0, fmt.Errorf("%w: more than %d pointers", ErrCompressionLoop, MaxPointerDepth)
			}
			if next < 0 {
				next = cursor + 2
			}
			cursor, start = target, target

		case labelKindNormal:
			cursor++
			if length == 0 {
				if next < 0 {
					next = cursor
				}
				return strings.Join(labels, "."), next, nil
			}
			if len(msg)-cursor < length {
				return "", 0, fmt.Errorf("%w: label of %d bytes at offset %d", ErrTruncatedPacket, length, cursor-1)
			}
			wireLen += 1 + length
			if wireLen > MaxNameLength {
				return "", 0, fmt.Errorf("%w: name at offset %d", ErrNameTooLong, off)
			}
			labels = append(labels, string(msg[cursor:cursor+length]))
			cursor += length

		default:
			return "", 0, fmt.Errorf("%w: length byte %#02x at offset %d", ErrReservedLabel, length, cursor)
		}
	}
}
