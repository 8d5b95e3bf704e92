package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedVillage(t *testing.T) *Village {
	t.Helper()
	v, err := New(DefaultSetup())
	require.NoError(t, err)
	v.Resources.Wood = 12
	v.Resources.Metal = 3
	hire(t, v, "Ann", "farmer")
	hire(t, v, "Ben", "builder")
	hire(t, v, "Cid", "lumberjack")
	_, err = v.StartProject("Woodmill")
	require.NoError(t, err)
	_, err = v.StartProject("House")
	require.NoError(t, err)
	v.AdvanceDay()
	v.AdvanceDay()
	return v
}

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	v := playedVillage(t)

	snap := v.Snapshot()
	restored, err := Restore(snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	require.Len(t, restored.Projects, 2)
	assert.Equal(t, "Woodmill", restored.Projects[0].Name)
	assert.Equal(t, 3, restored.Projects[0].DaysRemaining)
	assert.Equal(t, v.Workers[0].ID, restored.Workers[0].ID)
}

func TestSnapshot_RestoredVillageEvolvesIdentically(t *testing.T) {
	v := playedVillage(t)
	restored, err := Restore(v.Snapshot())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		v.AdvanceDay()
		restored.AdvanceDay()
	}

	a, b := v.Snapshot(), restored.Snapshot()
	assert.Equal(t, a.Resources, b.Resources)
	assert.Equal(t, a.Buildings, b.Buildings)
	assert.Equal(t, a.MaxWorkers, b.MaxWorkers)
	assert.Equal(t, a.Occupations, b.Occupations)
}

func TestSnapshot_SurvivesJSON(t *testing.T) {
	snap := playedVillage(t).Snapshot()

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, snap, &decoded)
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	snap := playedVillage(t).Snapshot()
	c := snap.Clone()

	c.Workers[0].Name = "Changed"
	c.Buildings[0] = "Ruin"

	assert.Equal(t, "Ann", snap.Workers[0].Name)
	assert.Equal(t, "House", snap.Buildings[0])
}

func TestRestore_RejectsUnknownKinds(t *testing.T) {
	snap := playedVillage(t).Snapshot()
	snap.Occupations = append(snap.Occupations, OccupationSpec{Name: "bard", Kind: "bard"})

	_, err := Restore(snap)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = Restore(nil)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestRestore_RejectsBrokenWorkforce(t *testing.T) {
	over := playedVillage(t).Snapshot()
	over.MaxWorkers = 1
	_, err := Restore(over)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	ghost := playedVillage(t).Snapshot()
	ghost.Workers[0].Occupation = "ghost"
	_, err = Restore(ghost)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestRecentEvents(t *testing.T) {
	v := NewVillage()
	for i := 0; i < maxEvents+10; i++ {
		v.record(i, CategoryGame, "event %d", i)
	}

	assert.Len(t, v.Events, maxEvents)
	assert.Equal(t, 10, v.Events[0].Day)

	recent := v.RecentEvents(2)
	require.Len(t, recent, 2)
	assert.Equal(t, maxEvents+9, recent[1].Day)
	assert.Nil(t, v.RecentEvents(0))
}
