package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/config"
	"github.com/talgya/hamlet/internal/engine"
)

func playedVillage(t *testing.T) *engine.Village {
	t.Helper()
	v, err := engine.New(engine.DefaultSetup())
	require.NoError(t, err)
	v.Resources.Wood = 12
	v.Resources.Metal = 3
	for _, h := range []struct{ name, occ string }{
		{"Ann", "farmer"},
		{"Ben", "builder"},
		{"Cid", "lumberjack"},
	} {
		_, err := v.Hire(h.name, h.occ)
		require.NoError(t, err)
	}
	_, err = v.StartProject("Woodmill")
	require.NoError(t, err)
	_, err = v.StartProject("House")
	require.NoError(t, err)
	v.AdvanceDay()
	v.AdvanceDay()
	return v
}

// exerciseStore runs the behavior every Store must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		_, err := s.LoadVillage(ctx, "nowhere")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		v := playedVillage(t)
		require.NoError(t, s.SaveVillage(ctx, v, "alpha"))

		got, err := s.LoadVillage(ctx, "alpha")
		require.NoError(t, err)

		want := v.Snapshot()
		want.Name = "alpha"
		assert.Equal(t, want, got)

		restored, err := engine.Restore(got)
		require.NoError(t, err)
		v.AdvanceDay()
		restored.AdvanceDay()
		assert.Equal(t, v.Resources, restored.Resources)
		assert.Equal(t, v.DaysElapsed, restored.DaysElapsed)
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		v := playedVillage(t)
		require.NoError(t, s.SaveVillage(ctx, v, "beta"))

		v.AdvanceDay()
		v.Workers = v.Workers[:1]
		require.NoError(t, s.SaveVillage(ctx, v, "beta"))

		got, err := s.LoadVillage(ctx, "beta")
		require.NoError(t, err)
		assert.Equal(t, 3, got.DaysElapsed)
		assert.Len(t, got.Workers, 1)
	})

	t.Run("names sorted", func(t *testing.T) {
		v := playedVillage(t)
		require.NoError(t, s.SaveVillage(ctx, v, "gamma"))
		require.NoError(t, s.SaveVillage(ctx, v, "aardvark"))

		names, err := s.ListVillageNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"aardvark", "alpha", "beta", "gamma"}, names)
	})
}

func TestOpen_SelectsDriver(t *testing.T) {
	s, err := Open(config.Storage{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(config.Storage{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "saves", "v.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.Storage{Driver: "redis"})
	assert.Error(t, err)
}

func TestLoadAndRestore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	v := playedVillage(t)
	require.NoError(t, s.SaveVillage(ctx, v, "home"))

	got, err := LoadAndRestore(ctx, s, "home")
	require.NoError(t, err)
	assert.Equal(t, "home", got.Name)
	assert.Equal(t, v.Population(), got.Population())

	_, err = LoadAndRestore(ctx, s, "away")
	assert.ErrorIs(t, err, ErrNotFound)
}
