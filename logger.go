package apikit

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger receives structured debug output from the client. Implementations
// must be safe for concurrent use.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// SimpleLogger writes leveled key=value lines to stderr. Intended for
// development; production callers plug in their own Logger.
type SimpleLogger struct {
	out *log.Logger
}

// NewSimpleLogger creates a console logger writing to stderr.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{
		out: log.New(os.Stderr, "apikit ", log.LstdFlags),
	}
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logf("DEBUG", msg, keysAndValues...)
}

func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logf("INFO", msg, keysAndValues...)
}

func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logf("WARN", msg, keysAndValues...)
}

func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logf("ERROR", msg, keysAndValues...)
}

func (l *SimpleLogger) logf(level, msg string, keysAndValues ...interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	if len(keysAndValues)%2 != 0 {
		fmt.Fprintf(&b, " %v=?", keysAndValues[len(keysAndValues)-1])
	}
	l.out.Print(b.String())
}
