package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsOrder(t *testing.T) {
	fixed := []Option{
		{Name: "vo", Value: "libmpv"},
		{Name: "hwdec", Value: ""},
		{Name: "target-prim", Value: "bt.709"},
	}
	extra := map[string]string{
		"volume":      "50",
		"cache":       "yes",
		"target-prim": "bt.2020",
		"empty":       "",
	}

	got := Options(fixed, extra)
	assert.Equal(t, []Option{
		{Name: "vo", Value: "libmpv"},
		{Name: "target-prim", Value: "bt.709"},
		{Name: "cache", Value: "yes"},
		{Name: "volume", Value: "50"},
	}, got)
}

func TestOptionsEmpty(t *testing.T) {
	assert.Empty(t, Options(nil, nil))
}

func TestLifecycleTransitions(t *testing.T) {
	l := NewLifecycle("render context")

	assert.Equal(t, Uninitialized, l.State())
	assert.ErrorIs(t, l.Check(), ErrNotCreated)
	assert.ErrorIs(t, l.MarkDestroyed(), ErrNotCreated)

	require.NoError(t, l.MarkCreated())
	assert.NoError(t, l.Check())
	assert.Error(t, l.MarkCreated())

	require.NoError(t, l.MarkDestroyed())
	assert.Equal(t, Destroyed, l.State())
	assert.ErrorIs(t, l.Check(), ErrDestroyed)
	assert.ErrorIs(t, l.MarkDestroyed(), ErrDestroyed)
	assert.ErrorIs(t, l.MarkCreated(), ErrDestroyed)
	assert.Contains(t, l.Check().Error(), "render context")
}

func TestLifecycleSingleDestroy(t *testing.T) {
	l := NewLifecycle("engine")
	require.NoError(t, l.MarkCreated())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.MarkDestroyed(); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, ErrDestroyed) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
