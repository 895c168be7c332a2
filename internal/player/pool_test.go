package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundeck/internal/types"
)

func testPool() (*Pool, map[string]*fakeBackend) {
	backends := make(map[string]*fakeBackend)
	factory := func(clip types.Clip) (Backend, error) {
		if clip.SourceRef == "broken" {
			return nil, errors.New("decode failed")
		}
		b := &fakeBackend{duration: clip.DurationSeconds}
		backends[clip.ID] = b
		return b, nil
	}
	return NewPool(factory, 1.0, nil), backends
}

func TestPoolSync(t *testing.T) {
	t.Run("CreatesControllersForNewClips", func(t *testing.T) {
		pool, _ := testPool()
		pool.Sync([]types.Clip{
			{ID: "a", DurationSeconds: 5, Volume: 1},
			{ID: "b", DurationSeconds: 3, Volume: 1},
		})

		_, ok := pool.Get("a")
		assert.True(t, ok)
		_, ok = pool.Get("b")
		assert.True(t, ok)
	})

	t.Run("RemovedClipReleasesResource", func(t *testing.T) {
		pool, backends := testPool()
		pool.Sync([]types.Clip{{ID: "a", DurationSeconds: 5, Volume: 1}})
		pool.Sync(nil)

		_, ok := pool.Get("a")
		assert.False(t, ok)
		assert.True(t, backends["a"].closed)
	})

	t.Run("TrimChangeRebuildsBackend", func(t *testing.T) {
		pool, backends := testPool()
		clip := types.Clip{ID: "a", DurationSeconds: 5, Volume: 1}
		pool.Sync([]types.Clip{clip})
		first := backends["a"]

		clip.TrimStart = types.Float(1)
		clip.TrimEnd = types.Float(3)
		pool.Sync([]types.Clip{clip})

		assert.True(t, first.closed, "old resource released before the new one")
		second := backends["a"]
		assert.NotSame(t, first, second)

		c, _ := pool.Get("a")
		c.PlayFromStart(types.TriggerClick)
		assert.Equal(t, 1.0, second.pos)
	})

	t.Run("VolumeOnlyChangeKeepsBackend", func(t *testing.T) {
		pool, backends := testPool()
		clip := types.Clip{ID: "a", DurationSeconds: 5, Volume: 1}
		pool.Sync([]types.Clip{clip})
		first := backends["a"]

		clip.Volume = 0.3
		pool.Sync([]types.Clip{clip})

		assert.False(t, first.closed)
		assert.InDelta(t, 0.3, first.gain, 1e-9)
	})

	t.Run("FactoryFailureYieldsDisabledController", func(t *testing.T) {
		pool, _ := testPool()
		pool.Sync([]types.Clip{{ID: "x", SourceRef: "broken", Volume: 1}})

		c, ok := pool.Get("x")
		require.True(t, ok)
		assert.True(t, c.Disabled())
	})
}

func TestPoolMasterVolume(t *testing.T) {
	pool, backends := testPool()
	pool.Sync([]types.Clip{
		{ID: "a", DurationSeconds: 5, Volume: 0.8},
		{ID: "b", DurationSeconds: 5, Volume: 0.5},
	})

	pool.SetMasterVolume(0.5)
	assert.InDelta(t, 0.4, backends["a"].gain, 1e-9)
	assert.InDelta(t, 0.25, backends["b"].gain, 1e-9)
}

func TestPoolTickAndPlaying(t *testing.T) {
	pool, backends := testPool()
	pool.Sync([]types.Clip{{ID: "a", DurationSeconds: 5, Volume: 1}})

	assert.False(t, pool.AnyPlaying())

	c, _ := pool.Get("a")
	c.PlayFromStart(types.TriggerClick)
	assert.True(t, pool.AnyPlaying())

	backends["a"].advance(5.0)
	pool.Tick()
	assert.False(t, pool.AnyPlaying())
	assert.Equal(t, types.Idle, c.State())
}
