// SPDX-License-Identifier: BSD-3-Clause

package dnswire

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/bassosimone/runtimex"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	query, err := NewQuery("www.example.com", TypeAAAA, bytes.NewReader([]byte{0xCA, 0xFE}))
	require.NoError(t, err)
	require.Equal(t, &Query{ID: 0xCAFE, Name: "www.example.com", Type: TypeAAAA}, query)
}

func TestNewQueryRandomnessFailure(t *testing.T) {
	expected := errors.New("mocked error")

	query, err := NewQuery("www.example.com", TypeA, iotest.ErrReader(expected))
	require.ErrorIs(t, err, expected)
	require.Nil(t, query)

	query, err = NewQuery("www.example.com", TypeA, bytes.NewReader([]byte{1}))
	require.Error(t, err)
	require.Nil(t, query)
}

func TestNewQueryCryptoRand(t *testing.T) {
	query, err := NewQuery("www.example.com", TypeA, rand.Reader)
	require.NoError(t, err)
	require.Equal(t, "www.example.com", query.Name)
}

func TestQueryClone(t *testing.T) {
	query := &Query{
		Name: "www.example.com",
		Type: TypeA,
		ID:   1234,
	}

	clone := query.Clone()

	require.NotSame(t, query, clone)
	require.Equal(t, query, clone)

	clone.Name = "www.example.net"
	clone.Type = TypeAAAA
	clone.ID = 5678

	require.Equal(t, "www.example.com", query.Name)
	require.Equal(t, TypeA, query.Type)
	require.Equal(t, uint16(1234), query.ID)
}

func TestEncodeQuery(t *testing.T) {
	raw, err := EncodeQuery(0x1234, "google.com", TypeA)
	require.NoError(t, err)

	expected := []byte{
		0x12, 0x34, // id
		0x01, 0x20, // flags: RD, AD
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // counts
		6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0,
		0x00, 0x01, // type A
		0x00, 0x01, // class IN
	}
	require.Equal(t, expected, raw)
}

func TestEncodeQueryDeterministic(t *testing.T) {
	first := runtimex.PanicOnError1(EncodeQuery(42, "example.com.", TypeHTTPS))
	second := runtimex.PanicOnError1(EncodeQuery(42, "example.com", TypeHTTPS))
	require.Equal(t, first, second)
}

func TestEncodeQueryInvalidName(t *testing.T) {
	raw, err := EncodeQuery(1, "www..example.com", TypeA)
	require.ErrorIs(t, err, ErrEncoding)
	require.Nil(t, raw)
}

func TestQueryEncodeUnpacksWithMiekg(t *testing.T) {
	tests := []struct {
		name  string
		qname string
		qtype RecordType
		fqdn  string
	}{
		{"A", "google.com", TypeA, "google.com."},
		{"AAAA", "www.example.com.", TypeAAAA, "www.example.com."},
		{"SVCB", "_dns.resolver.arpa", TypeSVCB, "_dns.resolver.arpa."},
		{"Unknown", "example.org", RecordType(65280), "example.org."},
		{"Root", ".", TypeNS, "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := &Query{ID: 37, Name: tt.qname, Type: tt.qtype}
			raw, err := query.Encode()
			require.NoError(t, err)

			msg := new(dns.Msg)
			require.NoError(t, msg.Unpack(raw))
			require.Equal(t, uint16(37), msg.Id)
			require.False(t, msg.Response)
			require.Equal(t, dns.OpcodeQuery, msg.Opcode)
			require.True(t, msg.RecursionDesired)
			require.True(t, msg.AuthenticatedData)
			require.Len(t, msg.Question, 1)
			require.Equal(t, dns.Question{
				Name:   tt.fqdn,
				Qtype:  uint16(tt.qtype),
				Qclass: dns.ClassINET,
			}, msg.Question[0])
			require.Empty(t, msg.Answer)
			require.Empty(t, msg.Ns)
			require.Empty(t, msg.Extra)
		})
	}
}

func TestQueryEncodeIDNA(t *testing.T) {
	query := &Query{
		Name: "bücher.example",
		Type: TypeA,
		ID:   42,
	}

	raw, err := query.Encode()
	require.NoError(t, err)

	msg, err := ParseResponse(raw)
	require.NoError(t, err)
	require.Len(t, msg.Questions, 1)
	require.Equal(t, "xn--bcher-kva.example", msg.Questions[0].Name)
}

func TestQueryEncodeIDNAError(t *testing.T) {
	query := &Query{
		Name: "bad näme.example",
		Type: TypeA,
	}

	_, err := query.Encode()
	require.ErrorIs(t, err, ErrEncoding)
}
