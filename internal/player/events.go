package player

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gen2brain/go-mpv"

	"github.com/depeter/glmpv/internal/engine"
)

var errPlayback = errors.New("playback failed")

// toEvent converts an mpv event into the loop's event model.
func toEvent(ev *mpv.Event) engine.Event {
	if ev == nil {
		return engine.Event{Kind: engine.EventNone, Name: mpv.EventNone.String()}
	}
	out := engine.Event{Name: ev.EventID.String()}

	switch ev.EventID {
	case mpv.EventNone:
		out.Kind = engine.EventNone
	case mpv.EventLogMsg:
		out.Kind = engine.EventLog
		if ev.Data != nil {
			lm := ev.LogMessage()
			out.Log = engine.LogMessage{Prefix: lm.Prefix, Level: lm.Level, Text: lm.Text}
		}
	case mpv.EventFileLoaded:
		out.Kind = engine.EventFileLoaded
	case mpv.EventEnd:
		out.Kind = engine.EventEndFile
		if ev.Data != nil {
			ef := ev.EndFile()
			if ef.Reason == mpv.EndFileError {
				out.Err = ef.Error
				if out.Err == nil {
					out.Err = errPlayback
				}
			}
		}
	case mpv.EventShutdown:
		out.Kind = engine.EventShutdown
	default:
		out.Kind = engine.EventOther
	}
	return out
}

// checkMediaPath rejects paths mpv cannot open before the load is queued.
// URLs and "-" (stdin) go to mpv unchecked.
func checkMediaPath(path string) error {
	switch {
	case path == "":
		return errors.New("empty media path")
	case path == "-", strings.Contains(path, "://"):
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("media path: %w", err)
	}
	return nil
}
