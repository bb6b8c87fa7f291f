package args

import (
	"strings"
	"time"

	"github.com/bassosimone/dnswire"
	"github.com/pkg/errors"
)

// General contains options controlling logging.
var General struct {
	Verbose          []bool `short:"v" long:"verbose"             env:"VERBOSITY"          description:"Show verbose debug information (repeat for more)"`
	LogFormat        string `short:"f" long:"log-format"          env:"LOG_FORMAT"         description:"Log format (json or text)." choice:"text" choice:"json" default:"text"`
	LogColor         string `short:"C" long:"log-color"           env:"LOG_COLOR"          description:"Should the log output be colored? true, false or auto" choice:"yes" choice:"no" choice:"true" choice:"false" choice:"auto" default:"auto"`
	LogFullTimestamp bool   `          long:"log-full-timestamp"  env:"LOG_FULL_TIMESTAMP" description:"Display full timestamp in logs."`
	LogReportCaller  bool   `          long:"log-report-caller"   env:"LOG_REPORT_CALLER"  description:"If you wish to add the calling method as a field."`
}

// Query contains the options describing the query to send.
var Query struct {
	Server  string        `short:"s" long:"server"  env:"DNSQUERY_SERVER"  description:"DNS server to query, as host:port" default:"8.8.8.8:53"`
	Name    string        `short:"n" long:"qname"   env:"DNSQUERY_QNAME"   description:"Domain name to query" default:"google.com"`
	Type    RecordType    `short:"t" long:"qtype"   env:"DNSQUERY_QTYPE"   description:"Record type to query (A, AAAA, NS, MX, CNAME, TXT, SVCB, HTTPS, ANY)" default:"A"`
	Timeout time.Duration `          long:"timeout" env:"DNSQUERY_TIMEOUT" description:"Time to wait for the response" default:"5s"`
}

// RecordType is a [dnswire.RecordType] which can be used as a flag value.
type RecordType dnswire.RecordType

// UnmarshalFlag implements flags.Unmarshaler.
func (t *RecordType) UnmarshalFlag(value string) error {
	rt, found := dnswire.ParseRecordType(value)
	if !found {
		return errors.Errorf("unknown record type %q, expected one of %s",
			value, strings.Join(dnswire.KnownRecordTypes(), ", "))
	}
	*t = RecordType(rt)
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (t RecordType) MarshalFlag() (string, error) {
	return dnswire.RecordType(t).String(), nil
}
