// Package logging configures the structured logger shared by the server.
package logging

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/graph-gophers/graphql-go/log"
	"github.com/sirupsen/logrus"
)

// Fields represents structured logging fields.
type Fields = logrus.Fields

// New returns a JSON logger writing to out at the named level. Unknown level
// names fall back to info.
func New(out io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps a level name to a logrus level.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// PanicLogger reports panics recovered by graphql-go during query execution.
type PanicLogger struct {
	Log logrus.FieldLogger
}

var _ log.Logger = (*PanicLogger)(nil)

// LogPanic logs the panic value with the stack of the panicking goroutine.
func (l *PanicLogger) LogPanic(ctx context.Context, value interface{}) {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]
	l.Log.WithFields(Fields{
		"panic": fmt.Sprint(value),
		"stack": string(buf),
	}).Error("graphql: panic occurred")
}
