//
// SPDX-License-Identifier: BSD-3-Clause
//
// Adapted from: https://github.com/ooni/probe-engine/blob/v0.23.0/netx/resolver/encoder.go
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/dns/dnscore/query.go
//

package dnswire

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// DefaultQueryFlags are the header flags of every query we send: recursion
// desired plus the AD bit signalling that we understand authenticated data.
const DefaultQueryFlags = FlagRecursionDesired | FlagAuthenticData

// Query is a DNS query.
//
// Construct using [NewQuery] or set all the fields.
type Query struct {
	// ID is the transaction ID.
	ID uint16

	// Name is the domain name to query.
	Name string

	// Type is the query type.
	Type RecordType
}

// NewQuery constructs a new [*Query] whose ID is read from rnd.
//
// In production, use [crypto/rand.Reader] as the randomness source.
func NewQuery(name string, qtype RecordType, rnd io.Reader) (*Query, error) {
	var buf [2]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return nil, fmt.Errorf("cannot generate query ID: %w", err)
	}
	query := &Query{
		ID:   binary.BigEndian.Uint16(buf[:]),
		Name: name,
		Type: qtype,
	}
	return query, nil
}

// Clone returns a deep copy of the query.
func (q *Query) Clone() *Query {
	return &Query{
		ID:   q.ID,
		Name: q.Name,
		Type: q.Type,
	}
}

// Encode serializes the query to the wire format.
func (q *Query) Encode() ([]byte, error) {
	name, err := q.asciiName()
	if err != nil {
		return nil, err
	}
	return EncodeQuery(q.ID, name, q.Type)
}

// asciiName returns the query name converted to its IDNA form.
//
// Pure ASCII names are returned unchanged, so that names such
// as _dns.resolver.arpa, which IDNA rejects, remain usable.
func (q *Query) asciiName() (string, error) {
	if isASCII(q.Name) {
		return q.Name, nil
	}
	fqdn := strings.HasSuffix(q.Name, ".")
	punyName, err := idna.Lookup.ToASCII(strings.TrimSuffix(q.Name, "."))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrEncoding, q.Name, err.Error())
	}
	if fqdn {
		punyName += "."
	}
	return punyName, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// EncodeQuery returns the wire format of a recursive query with the given
// ID asking for records of type qtype and class [ClassINET] for name.
func EncodeQuery(id uint16, name string, qtype RecordType) ([]byte, error) {
	qname, err := EncodeName(name)
	if err != nil {
		return nil, err
	}
	out := EncodeHeader(Header{
		ID:      id,
		Flags:   DefaultQueryFlags,
		QDCount: 1,
	})
	out = append(out, qname...)
	out = binary.BigEndian.AppendUint16(out, uint16(qtype))
	out = binary.BigEndian.AppendUint16(out, ClassINET)
	return out, nil
}
