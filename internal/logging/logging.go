// Package logging builds the program's leveled loggers and maps engine
// severities onto them.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/depeter/glmpv/internal/engine"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). Unknown names fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "glmpv",
	})
}

// Sub returns a logger for one subsystem.
func Sub(l *log.Logger, name string) *log.Logger {
	return l.WithPrefix("glmpv/" + name)
}

// EngineLevel maps an engine severity name to a log level.
func EngineLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "fatal", "error":
		return log.ErrorLevel
	case "warn":
		return log.WarnLevel
	case "info", "status":
		return log.InfoLevel
	default:
		// v, debug, trace
		return log.DebugLevel
	}
}

// Engine forwards an engine log message at its mapped level.
func Engine(l *log.Logger, msg engine.LogMessage) {
	l.Log(EngineLevel(msg.Level), strings.TrimRight(msg.Text, "\n"), "module", msg.Prefix)
}
