package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_defaultLogger_filters_by_level(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOutput(WARNING, &buf)

	l.Debugf("scanning %d rows", 3)
	l.Infof("listening")
	require.Empty(t, buf.String())

	l.Warnf("slow query")
	l.Errorf("cannot connect: %v", "timeout")

	out := buf.String()
	require.Contains(t, out, "WARN slow query")
	require.Contains(t, out, "ERROR cannot connect: timeout")
}

func Test_defaultLogger_silence_drops_everything(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOutput(SILENCE, &buf)

	l.Errorf("boom")
	require.Empty(t, buf.String())
}
