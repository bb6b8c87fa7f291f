// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"encoding/binary"
	"fmt"
)

// Question is an entry of the question section.
type Question struct {
	// Name is the queried name without the trailing dot.
	Name string

	// Type is the queried record type.
	Type RecordType

	// Class is the queried class, usually [ClassINET].
	Class uint16
}

// ResourceRecord is an entry of the answer, authority or additional section.
//
// The record data is kept opaque: we do not interpret it according to Type.
type ResourceRecord struct {
	Name  string
	Type  RecordType
	Class uint16
	TTL   uint32

	// Data is a copy of the RDATA bytes; it does not alias the message buffer.
	Data []byte
}

const (
	questionFixedSize = 4  // type, class
	recordFixedSize   = 10 // type, class, ttl, rdlength
)

// ParseQuestions parses count questions starting at offset off inside
// msg and returns them along with the offset following the last one.
func ParseQuestions(msg []byte, off int, count uint16) ([]Question, int, error) {
	out := make([]Question, 0, min(int(count), len(msg)/(1+questionFixedSize)))
	for idx := 0; idx < int(count); idx++ {
		name, next, err := DecodeName(msg, off)
		if err != nil {
			return nil, 0, fmt.Errorf("question %d: %w", idx, err)
		}
		off = next
		if len(msg)-off < questionFixedSize {
			return nil, 0, fmt.Errorf("question %d: %w: fixed fields at offset %d", idx, ErrTruncatedPacket, off)
		}
		out = append(out, Question{
			Name:  name,
			Type:  RecordType(binary.BigEndian.Uint16(msg[off : off+2])),
			Class: binary.BigEndian.Uint16(msg[off+2 : off+4]),
		})
		off += questionFixedSize
	}
	return out, off, nil
}

// ParseResourceRecords parses count resource records starting at offset
// off inside msg and returns them along with the offset following the last one.
func ParseResourceRecords(msg []byte, off int, count uint16) ([]ResourceRecord, int, error) {
	out := make([]ResourceRecord, 0, min(int(count), len(msg)/(1+recordFixedSize)))
	for idx := 0; idx < int(count); idx++ {
		name, next, err := DecodeName(msg, off)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", idx, err)
		}
		off = next
		if len(msg)-off < recordFixedSize {
			return nil, 0, fmt.Errorf("record %d: %w: fixed fields at offset %d", idx, ErrTruncatedPacket, off)
		}
		rr := ResourceRecord{
			Name:  name,
			Type:  RecordType(binary.BigEndian.Uint16(msg[off : off+2])),
			Class: binary.BigEndian.Uint16(msg[off+2 : off+4]),
			TTL:   binary.BigEndian.Uint32(msg[off+4 : off+8]),
		}
		rdlength := int(binary.BigEndian.Uint16(msg[off+8 : off+10]))
		off += recordFixedSize
		if len(msg)-off < rdlength {
			return nil, 0, fmt.Errorf("record %d: %w: rdata needs %d bytes, got %d",
				idx, ErrTruncatedPacket, rdlength, len(msg)-off)
		}
		rr.Data = append([]byte{}, msg[off:off+rdlength]...)
		off += rdlength
		out = append(out, rr)
	}
	return out, off, nil
}
