package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gen2brain/go-mpv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/glmpv/internal/engine"
)

func TestToEventKinds(t *testing.T) {
	tests := []struct {
		id   mpv.EventID
		kind engine.EventKind
		name string
	}{
		{mpv.EventNone, engine.EventNone, "none"},
		{mpv.EventFileLoaded, engine.EventFileLoaded, "file-loaded"},
		{mpv.EventEnd, engine.EventEndFile, "end-file"},
		{mpv.EventShutdown, engine.EventShutdown, "shutdown"},
		{mpv.EventLogMsg, engine.EventLog, "log-message"},
		{mpv.EventPropertyChange, engine.EventOther, "property-change"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := toEvent(&mpv.Event{EventID: tt.id})
			assert.Equal(t, tt.kind, ev.Kind)
			assert.Equal(t, tt.name, ev.Name)
			assert.NoError(t, ev.Err)
		})
	}
}

func TestToEventNil(t *testing.T) {
	ev := toEvent(nil)
	assert.Equal(t, engine.EventNone, ev.Kind)
}

func TestCheckMediaPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mkv")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, checkMediaPath(file))
	assert.NoError(t, checkMediaPath(dir))
	assert.NoError(t, checkMediaPath("-"))
	assert.NoError(t, checkMediaPath("https://example.com/a.mp4"))

	assert.Error(t, checkMediaPath(""))
	err := checkMediaPath(filepath.Join(dir, "missing.mkv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
