package logging

import (
	"io"
	"strings"

	"github.com/bassosimone/dnswire/internal/args"
	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logger according to [args.General],
// writing log entries to out.
func SetupLogging(out io.Writer) {
	SetVerbosity(args.General.Verbose)
	log.SetOutput(out)

	if args.General.LogReportCaller {
		log.AddHook(&ContextHook{})
	}

	if args.General.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime:  "timestamp",
				log.FieldKeyLevel: "@level",
				log.FieldKeyMsg:   "message",
				log.FieldKeyFunc:  "@caller",
			},
		})
	} else {
		color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
		log.SetFormatter(&log.TextFormatter{
			ForceColors:   color == "yes" || color == "true" || color == "1",
			DisableColors: color == "no" || color == "false" || color == "0",
			FullTimestamp: args.General.LogFullTimestamp,
		})
	}
	log.Debugf("Verbosity level: %v", VerbosityName())
}
