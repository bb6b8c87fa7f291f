package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/bassosimone/dnswire"
	"github.com/bassosimone/dnswire/internal/args"
	"github.com/bassosimone/dnswire/internal/logging"
	"github.com/bassosimone/dnswire/internal/presenter"
	"github.com/bassosimone/dnswire/internal/transport"
	"github.com/bassosimone/dnswire/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// exchanger sends a raw query and returns the raw response.
type exchanger interface {
	Exchange(ctx context.Context, server string, query []byte) ([]byte, error)
}

// newParser creates the command line parser for the general and query options.
func newParser() *flags.Parser {
	parser := flags.NewNamedParser(path.Base(os.Args[0]), flags.HelpFlag|flags.PrintErrors)
	parser.ShortDescription = "Send a single DNS query over UDP and print the response"
	if _, err := parser.AddGroup("General", "General options", &args.General); err != nil {
		util.MustErrorNilOrExit(errors.WithStack(err))
	}
	if _, err := parser.AddGroup("Query", "Query options", &args.Query); err != nil {
		util.MustErrorNilOrExit(errors.WithStack(err))
	}
	return parser
}

// run sends the query described by [args.Query] using txp and prints the response to w.
func run(ctx context.Context, w io.Writer, rnd io.Reader, txp exchanger) error {
	qtype := dnswire.RecordType(args.Query.Type)
	fmt.Fprintf(w, "Hitting %s with a/an %s query for %s\n", args.Query.Server, qtype, args.Query.Name)

	query, err := dnswire.NewQuery(args.Query.Name, qtype, rnd)
	if err != nil {
		return errors.WithStack(err)
	}
	raw, err := query.Encode()
	if err != nil {
		return errors.WithStack(err)
	}
	log.WithFields(log.Fields{
		"id":    query.ID,
		"name":  query.Name,
		"type":  qtype.String(),
		"bytes": len(raw),
	}).Debug("encoded query")

	if args.Query.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, args.Query.Timeout)
		defer cancel()
	}
	respRaw, err := txp.Exchange(ctx, args.Query.Server, raw)
	if err != nil {
		return err
	}

	msg, err := dnswire.ParseResponse(respRaw)
	if err != nil {
		return errors.Wrap(err, "failed to parse response packet")
	}
	if _, err := dnswire.ValidateResponseForQuery(query, msg); err != nil {
		return errors.Wrap(err, "response does not match query")
	}
	if msg.Truncated() {
		log.Warn("response is truncated")
	}
	if err := dnswire.ResponseErrorFromRCODE(msg); err != nil {
		log.WithError(err).Warn("server did not answer")
	}
	return presenter.Print(w, msg)
}

// main parses the command line, sends the query and prints the response.
func main() {
	parser := newParser()
	_, err := parser.Parse()
	util.MustErrorNilOrExit(err)

	logging.SetupLogging(os.Stderr)
	util.MustErrorNilOrExit(run(context.Background(), os.Stdout, rand.Reader, &transport.UDP{}))
}
