package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

// Logger is the leveled logger carried in context by pkg/xcontext.
type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
	out   *log.Logger
}

func NewLogger(level int) *defaultLogger {
	return NewLoggerWithOutput(level, os.Stderr)
}

func NewLoggerWithOutput(level int, w io.Writer) *defaultLogger {
	return &defaultLogger{
		level: level,
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
	}
}

// logf writes with calldepth 3 so the reported file:line is the caller of
// Debugf/Infof/Warnf/Errorf, not this package.
func (l *defaultLogger) logf(level int, tag, msg string, a ...any) {
	if l.level > level {
		return
	}

	l.out.Output(3, tag+" "+fmt.Sprintf(msg, a...))
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, "DEBUG", msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.logf(INFO, "INFO", msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, "WARN", msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, "ERROR", msg, a...)
}
