//
// SPDX-License-Identifier: BSD-3-Clause
//
// Adapted from: https://github.com/ooni/probe-engine/blob/v0.23.0/netx/resolver/decoder.go
// Adapted from: https://github.com/golang/go/blob/go1.21.10/src/net/dnsclient_unix.go
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/dns/dnscore/response.go
//

package dnswire

import (
	"errors"
	"fmt"
	"strings"
)

// Message is a decoded DNS message.
//
// Construct a new instance using [ParseResponse].
type Message struct {
	Header
	Questions   []Question
	Answers     []ResourceRecord
	Authorities []ResourceRecord
	Additionals []ResourceRecord
}

// ParseResponse decodes a raw DNS response message.
//
// Decoding proceeds through the header and then the question, answer,
// authority and additional sections in order. The first error aborts
// decoding and no partial message is returned. Bytes following the last
// section are ignored.
//
// A message consisting of just the 12 bytes header decodes successfully
// with empty sections even when the header declares nonzero counts.
func ParseResponse(raw []byte) (*Message, error) {
	header, err := DecodeHeader(raw)
	if err != nil {
		return nil, err
	}
	msg := &Message{Header: header}
	if len(raw) == HeaderSize {
		return msg, nil
	}

	off := HeaderSize
	msg.Questions, off, err = ParseQuestions(raw, off, header.QDCount)
	if err != nil {
		return nil, fmt.Errorf("question section: %w", err)
	}
	msg.Answers, off, err = ParseResourceRecords(raw, off, header.ANCount)
	if err != nil {
		return nil, fmt.Errorf("answer section: %w", err)
	}
	msg.Authorities, off, err = ParseResourceRecords(raw, off, header.NSCount)
	if err != nil {
		return nil, fmt.Errorf("authority section: %w", err)
	}
	msg.Additionals, _, err = ParseResourceRecords(raw, off, header.ARCount)
	if err != nil {
		return nil, fmt.Errorf("additional section: %w", err)
	}
	return msg, nil
}

// AnswersOfType returns the answer records having the given type, in
// the same order in which they appear in the message.
func (m *Message) AnswersOfType(t RecordType) []ResourceRecord {
	var out []ResourceRecord
	for _, rr := range m.Answers {
		if rr.Type == t {
			out = append(out, rr)
		}
	}
	return out
}

// Additional errors emitted by [ValidateResponseForQuery].
var (
	// ErrInvalidQuery means that the query does not have a name.
	ErrInvalidQuery = errors.New("invalid query")
)

// ValidateResponseForQuery validates a DNS response for a given query.
// On success it returns the single question contained in the response.
func ValidateResponseForQuery(query *Query, resp *Message) (Question, error) {
	// 1. make sure the message is actually a response
	if !resp.Response() {
		return Question{}, ErrInvalidResponse
	}

	// 2. make sure the response ID matches the query ID
	if resp.ID != query.ID {
		return Question{}, ErrInvalidResponse
	}

	// 3. make sure the query has a name and the response contains a question
	if query.Name == "" {
		return Question{}, ErrInvalidQuery
	}
	if len(resp.Questions) != 1 {
		return Question{}, ErrInvalidResponse
	}
	resp0 := resp.Questions[0]

	// 4. make sure the question name, class and type are correct
	qname, err := query.asciiName()
	if err != nil {
		return Question{}, ErrInvalidQuery
	}
	if !responseEqualASCIIName(strings.TrimSuffix(resp0.Name, "."), strings.TrimSuffix(qname, ".")) {
		return Question{}, ErrInvalidResponse
	}
	if resp0.Class != ClassINET {
		return Question{}, ErrInvalidResponse
	}
	if resp0.Type != query.Type {
		return Question{}, ErrInvalidResponse
	}
	return resp0, nil
}

// SPDX-License-Identifier: BSD-3-Clause
//
// Borrowed from Go src/net package.
func responseEqualASCIIName(x, y string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := 0; i < len(x); i++ {
		a := x[i]
		b := y[i]
		if 'A' <= a && a <= 'Z' {
			a += 0x20
		}
		if 'A' <= b && b <= 'Z' {
			b += 0x20
		}
		if a != b {
			return false
		}
	}
	return true
}

// These error messages use the same suffixes used by the Go standard library.
var (
	// ErrInvalidResponse means that the response is not a response message
	// or does not contain a single question matching the query.
	ErrInvalidResponse = errors.New("invalid DNS response")

	// ErrNoName indicates that the server response code is NXDOMAIN.
	ErrNoName = errors.New("no such host")

	// ErrServerMisbehaving indicates that the server response code is
	// neither 0, nor NXDOMAIN, nor SERVFAIL.
	ErrServerMisbehaving = errors.New("server misbehaving")

	// ErrServerTemporarilyMisbehaving indicates that the server answer is SERVFAIL.
	//
	// The error message is same as [ErrServerMisbehaving] for compatibility with the
	// Go standard library, which assigns the same error string to both errors.
	ErrServerTemporarilyMisbehaving = errors.New("server misbehaving")

	// ErrNoData indicates that there is no pertinent answer in the response.
	ErrNoData = errors.New("no answer from DNS server")
)

// ResponseErrorFromRCODE maps an RCODE inside a valid DNS response
// to an error string using a suffix compatible with the error strings
// returned by [*net.Resolver].
//
// For example, if a domain does not exist, the error
// will use the "no such host" suffix.
//
// If the RCODE is zero, this function returns nil.
//
// Before invoking this function, make sure the response is valid
// for the request by calling [ValidateResponseForQuery].
func ResponseErrorFromRCODE(resp *Message) error {
	rcode := resp.Rcode()

	// 1. handle NXDOMAIN case by mapping it to EAI_NONAME
	if rcode == RcodeNameError {
		return ErrNoName
	}

	// 2. handle the case of lame referral by mapping it to EAI_NODATA
	if rcode == RcodeSuccess &&
		!resp.Authoritative() &&
		!resp.RecursionAvailable() &&
		len(resp.Answers) == 0 {
		return ErrNoData
	}

	// 3. handle any other error by mapping to EAI_FAIL
	if rcode != RcodeSuccess {
		if rcode == RcodeServerFailure {
			return ErrServerTemporarilyMisbehaving
		}
		return ErrServerMisbehaving
	}
	return nil
}

// ValidateResponse combines [ValidateResponseForQuery] and [ResponseErrorFromRCODE].
func ValidateResponse(query *Query, resp *Message) error {
	if _, err := ValidateResponseForQuery(query, resp); err != nil {
		return err
	}
	return ResponseErrorFromRCODE(resp)
}
