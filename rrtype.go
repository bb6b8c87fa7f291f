// SPDX-License-Identifier: GPL-3.0-or-later

package dnswire

import (
	"strings"

	"github.com/miekg/dns"
)

// RecordType is a DNS record type code.
//
// The named constants are the types this package knows by name. Any
// other 16-bit value is a valid unknown type: it round-trips unchanged
// and prints using the RFC 3597 TYPEnnn notation.
type RecordType uint16

// Known record types.
const (
	TypeA     RecordType = 1
	TypeNS    RecordType = 2
	TypeCNAME RecordType = 5
	TypeMX    RecordType = 15
	TypeTXT   RecordType = 16
	TypeAAAA  RecordType = 28
	TypeSVCB  RecordType = 64
	TypeHTTPS RecordType = 65
	TypeANY   RecordType = 255
)

// ClassINET is the Internet class.
const ClassINET = 1

var recordTypeNames = map[RecordType]string{
	TypeA:     "A",
	TypeNS:    "NS",
	TypeCNAME: "CNAME",
	TypeMX:    "MX",
	TypeTXT:   "TXT",
	TypeAAAA:  "AAAA",
	TypeSVCB:  "SVCB",
	TypeHTTPS: "HTTPS",
	TypeANY:   "ANY",
}

// Known returns whether t is one of the named record types.
func (t RecordType) Known() bool {
	_, found := recordTypeNames[t]
	return found
}

// String implements [fmt.Stringer].
func (t RecordType) String() string {
	if name, found := recordTypeNames[t]; found {
		return name
	}
	return dns.Type(t).String()
}

// ParseRecordType maps a mnemonic such as "aaaa" or "MX" to the
// corresponding known record type. Matching is case-insensitive.
func ParseRecordType(s string) (RecordType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range recordTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// KnownRecordTypes returns the mnemonics of the named record types.
func KnownRecordTypes() []string {
	return []string{"A", "NS", "CNAME", "MX", "TXT", "AAAA", "SVCB", "HTTPS", "ANY"}
}
