package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/depeter/glmpv/internal/engine"
)

func TestEngineLevel(t *testing.T) {
	cases := map[string]log.Level{
		"fatal":  log.ErrorLevel,
		"error":  log.ErrorLevel,
		"warn":   log.WarnLevel,
		"info":   log.InfoLevel,
		"status": log.InfoLevel,
		"v":      log.DebugLevel,
		"debug":  log.DebugLevel,
		"trace":  log.DebugLevel,
		"WARN":   log.WarnLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, EngineLevel(in), in)
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	assert.Equal(t, log.WarnLevel, l.GetLevel())

	l = New(&buf, "bogus")
	assert.Equal(t, log.InfoLevel, l.GetLevel())
}

func TestEngineForwarding(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	Engine(l, engine.LogMessage{Prefix: "vo/gpu", Level: "debug", Text: "hidden\n"})
	assert.Empty(t, buf.String())

	Engine(l, engine.LogMessage{Prefix: "cplayer", Level: "warn", Text: "file is odd\n"})
	out := buf.String()
	assert.Contains(t, out, "file is odd")
	assert.Contains(t, out, "cplayer")
	assert.NotContains(t, out, "odd\n\n")
}
