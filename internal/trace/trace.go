// Package trace provides opt-in structured tracing for the scanner,
// parser, and interpreter. It is off by default and never writes to
// stdout, so it cannot interfere with the diagnostic formats the driver
// is required to print there; set TLOX_TRACE=1 to enable it.
package trace

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once    sync.Once
	log     *logrus.Logger
	enabled bool
)

func logger() *logrus.Logger {
	once.Do(func() {
		enabled = os.Getenv("TLOX_TRACE") == "1"
		log = logrus.New()
		log.Out = os.Stderr
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: false})
		if enabled {
			log.SetLevel(logrus.TraceLevel)
		} else {
			log.SetLevel(logrus.PanicLevel + 1) // effectively silent
		}
	})
	return log
}

// Enabled reports whether TLOX_TRACE=1 was set for this process.
func Enabled() bool {
	logger()
	return enabled
}

// Scan logs a single scanner step.
func Scan(line int, lexeme string, typ interface{}) {
	if !Enabled() {
		return
	}
	logger().WithFields(logrus.Fields{"stage": "scan", "line": line, "lexeme": lexeme}).Tracef("token %v", typ)
}

// Parse logs entry into a parser rule.
func Parse(rule string, line int) {
	if !Enabled() {
		return
	}
	logger().WithFields(logrus.Fields{"stage": "parse", "line": line}).Trace(rule)
}

// Eval logs an interpreter evaluation step.
func Eval(kind string, line int) {
	if !Enabled() {
		return
	}
	logger().WithFields(logrus.Fields{"stage": "eval", "line": line}).Trace(kind)
}
