package main

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/bassosimone/dnswire"
	"github.com/bassosimone/dnswire/internal/args"
	"github.com/bassosimone/dnswire/internal/util"
	"github.com/bassosimone/runtimex"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// mockExchanger answers queries using a function.
type mockExchanger struct {
	respond func(query *dns.Msg) []byte
	server  string
}

func (m *mockExchanger) Exchange(ctx context.Context, server string, raw []byte) ([]byte, error) {
	m.server = server
	query := new(dns.Msg)
	if err := query.Unpack(raw); err != nil {
		return nil, err
	}
	return m.respond(query), nil
}

// setQuery configures the query options as the command line parser would.
func setQuery(t *testing.T, name string, qtype dnswire.RecordType) {
	saved := args.Query
	args.Query.Server = "192.0.2.1:53"
	args.Query.Name = name
	args.Query.Type = args.RecordType(qtype)
	args.Query.Timeout = time.Second
	t.Cleanup(func() { args.Query = saved })
}

func replyWithA(query *dns.Msg) []byte {
	resp := new(dns.Msg)
	resp.SetReply(query)
	resp.RecursionAvailable = true
	resp.Answer = append(resp.Answer, &dns.A{
		Hdr: dns.RR_Header{
			Name:   query.Question[0].Name,
			Rrtype: dns.TypeA,
			Class:  dns.ClassINET,
			Ttl:    300,
		},
		A: net.IPv4(142, 250, 184, 206),
	})
	resp.Compress = true
	return runtimex.PanicOnError1(resp.Pack())
}

func Test_Run(t *testing.T) {
	setQuery(t, "google.com", dnswire.TypeA)
	txp := &mockExchanger{respond: replyWithA}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader([]byte{0x12, 0x34}), txp)
	require.NoError(t, err)

	require.Equal(t, "192.0.2.1:53", txp.server)
	text := out.String()
	require.Contains(t, text, "Hitting 192.0.2.1:53 with a/an A query for google.com\n")
	require.Contains(t, text, "QID = 0X1234")
	require.Contains(t, text, ";; ANSWER SECTION:\ngoogle.com.\t300\t")
	require.Contains(t, text, `\# 4 8efab8ce`)
}

func Test_RunMalformedResponse(t *testing.T) {
	setQuery(t, "google.com", dnswire.TypeA)
	txp := &mockExchanger{respond: func(query *dns.Msg) []byte {
		raw := replyWithA(query)
		return raw[:len(raw)-2]
	}}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader([]byte{0, 1}), txp)
	require.ErrorIs(t, err, dnswire.ErrTruncatedPacket)
	require.Equal(t, util.ErrMalformedResponse, util.ExitCode(err))
	require.NotContains(t, out.String(), "Got a response")
}

func Test_RunMismatchedID(t *testing.T) {
	setQuery(t, "google.com", dnswire.TypeA)
	txp := &mockExchanger{respond: func(query *dns.Msg) []byte {
		query.Id++
		return replyWithA(query)
	}}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader([]byte{0, 1}), txp)
	require.ErrorIs(t, err, dnswire.ErrInvalidResponse)
	require.Equal(t, util.ErrInvalidResponse, util.ExitCode(err))
}

func Test_RunNXDOMAINIsPrinted(t *testing.T) {
	setQuery(t, "nonexistent.example", dnswire.TypeAAAA)
	txp := &mockExchanger{respond: func(query *dns.Msg) []byte {
		resp := new(dns.Msg)
		resp.SetRcode(query, dns.RcodeNameError)
		return runtimex.PanicOnError1(resp.Pack())
	}}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader([]byte{0, 1}), txp)
	require.NoError(t, err)
	require.Contains(t, out.String(), "status: NXDOMAIN")
}

func Test_RunInvalidName(t *testing.T) {
	setQuery(t, "www..example.com", dnswire.TypeA)
	txp := &mockExchanger{respond: replyWithA}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader([]byte{0, 1}), txp)
	require.ErrorIs(t, err, dnswire.ErrEncoding)
	require.Empty(t, txp.server)
}

func Test_RunRandomnessFailure(t *testing.T) {
	setQuery(t, "google.com", dnswire.TypeA)
	txp := &mockExchanger{respond: replyWithA}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader(nil), txp)
	require.Error(t, err)
	require.Equal(t, util.ErrGeneric, util.ExitCode(err))
}

func Test_RunTransportError(t *testing.T) {
	setQuery(t, "google.com", dnswire.TypeA)
	expected := errors.New("mocked error")
	txp := &failingExchanger{err: expected}

	var out bytes.Buffer
	err := run(context.Background(), &out, bytes.NewReader([]byte{0, 1}), txp)
	require.ErrorIs(t, err, expected)
}

type failingExchanger struct {
	err error
}

func (f *failingExchanger) Exchange(ctx context.Context, server string, raw []byte) ([]byte, error) {
	return nil, f.err
}
