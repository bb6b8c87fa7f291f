// Package presenter renders decoded DNS messages for humans.
package presenter

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/bassosimone/dnswire"
	"github.com/miekg/dns"
)

// Print writes a description of msg to w. Records are rendered in the
// RFC 3597 generic format, since their data is not interpreted.
func Print(w io.Writer, msg *dnswire.Message) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Got a response:\n")
	fmt.Fprintf(&sb, "  QID = %#X\n", msg.ID)
	fmt.Fprintf(&sb, "  flags = %016b\n", msg.Flags)
	fmt.Fprintf(&sb, "  opcode: %s, status: %s\n", opcodeString(msg.Opcode()), rcodeString(msg.Rcode()))
	fmt.Fprintf(&sb, "  QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		msg.QDCount, msg.ANCount, msg.NSCount, msg.ARCount)

	if len(msg.Questions) > 0 {
		sb.WriteString("\n;; QUESTION SECTION:\n")
		for _, q := range msg.Questions {
			sb.WriteString(QuestionString(q))
			sb.WriteString("\n")
		}
	}
	printSection(&sb, "ANSWER", msg.Answers)
	printSection(&sb, "AUTHORITY", msg.Authorities)
	printSection(&sb, "ADDITIONAL", msg.Additionals)

	_, err := io.WriteString(w, sb.String())
	return err
}

func printSection(sb *strings.Builder, name string, records []dnswire.ResourceRecord) {
	if len(records) <= 0 {
		return
	}
	fmt.Fprintf(sb, "\n;; %s SECTION:\n", name)
	for _, rr := range records {
		sb.WriteString(RecordString(rr))
		sb.WriteString("\n")
	}
}

// QuestionString formats q like a zone file comment line.
func QuestionString(q dnswire.Question) string {
	dq := dns.Question{
		Name:   dns.Fqdn(q.Name),
		Qtype:  uint16(q.Type),
		Qclass: q.Class,
	}
	return dq.String()
}

// RecordString formats rr as a zone file line with RFC 3597 generic data.
func RecordString(rr dnswire.ResourceRecord) string {
	generic := &dns.RFC3597{
		Hdr: dns.RR_Header{
			Name:     dns.Fqdn(rr.Name),
			Rrtype:   uint16(rr.Type),
			Class:    rr.Class,
			Ttl:      rr.TTL,
			Rdlength: uint16(len(rr.Data)),
		},
		Rdata: hex.EncodeToString(rr.Data),
	}
	return generic.String()
}

func opcodeString(opcode int) string {
	if s, found := dns.OpcodeToString[opcode]; found {
		return s
	}
	return fmt.Sprintf("OPCODE%d", opcode)
}

func rcodeString(rcode int) string {
	if s, found := dns.RcodeToString[rcode]; found {
		return s
	}
	return fmt.Sprintf("RCODE%d", rcode)
}
