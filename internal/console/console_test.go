package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/engine"
	"github.com/talgya/hamlet/internal/persistence"
)

// recordingStore wraps a MemoryStore and counts calls.
type recordingStore struct {
	*persistence.MemoryStore
	listCalls int
	saveCalls []string
	loadCalls []string
	listErr   error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: persistence.NewMemoryStore()}
}

func (s *recordingStore) ListVillageNames(ctx context.Context) ([]string, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryStore.ListVillageNames(ctx)
}

func (s *recordingStore) SaveVillage(ctx context.Context, v *engine.Village, name string) error {
	s.saveCalls = append(s.saveCalls, name)
	return s.MemoryStore.SaveVillage(ctx, v, name)
}

func (s *recordingStore) LoadVillage(ctx context.Context, name string) (*engine.Snapshot, error) {
	s.loadCalls = append(s.loadCalls, name)
	return s.MemoryStore.LoadVillage(ctx, name)
}

func newVillage(t *testing.T) *engine.Village {
	t.Helper()
	v, err := engine.New(engine.DefaultSetup())
	require.NoError(t, err)
	return v
}

func newConsole(t *testing.T, input string, store persistence.Store, v *engine.Village) (*Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, store, v, nil), &out
}

func TestSave_ListsNamesAndOverwritesOnYes(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.MemoryStore.SaveVillage(ctx, newVillage(t), "TestVillage"))

	c, out := newConsole(t, "TestVillage\ny\n", store, newVillage(t))
	require.NoError(t, c.Save(ctx))

	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, []string{"TestVillage"}, store.saveCalls)
	assert.Contains(t, out.String(), "1. TestVillage")
	assert.Contains(t, out.String(), "Overwrite?")
}

func TestSave_DeclinedOverwriteDoesNotSave(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.MemoryStore.SaveVillage(ctx, newVillage(t), "TestVillage"))

	c, out := newConsole(t, "TestVillage\nn\n", store, newVillage(t))
	require.NoError(t, c.Save(ctx))

	assert.Empty(t, store.saveCalls)
	assert.Contains(t, out.String(), "Save cancelled.")
}

func TestSave_NewNameSkipsConfirmation(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()

	c, out := newConsole(t, "Fresh\n", store, newVillage(t))
	require.NoError(t, c.Save(ctx))

	assert.Equal(t, []string{"Fresh"}, store.saveCalls)
	assert.NotContains(t, out.String(), "Overwrite?")
}

func TestSave_ListFailure(t *testing.T) {
	store := newRecordingStore()
	store.listErr = errors.New("disk gone")

	c, _ := newConsole(t, "Fresh\n", store, newVillage(t))
	err := c.Save(context.Background())

	require.Error(t, err)
	assert.Empty(t, store.saveCalls)
}

func TestLoad_ReplacesVillageOnValidChoice(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()

	saved := newVillage(t)
	_, err := saved.Hire("Ann", "farmer")
	require.NoError(t, err)
	saved.AdvanceDay()
	require.NoError(t, store.MemoryStore.SaveVillage(ctx, saved, "TestVillage"))

	current := newVillage(t)
	c, _ := newConsole(t, "TestVillage\n", store, current)
	require.NoError(t, c.Load(ctx))

	assert.Equal(t, []string{"TestVillage"}, store.loadCalls)
	assert.NotSame(t, current, c.Village())
	assert.Equal(t, "TestVillage", c.Village().Name)
	assert.Equal(t, 1, c.Village().DaysElapsed)
	assert.Equal(t, 1, c.Village().Population())
}

func TestLoad_AcceptsListNumber(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.MemoryStore.SaveVillage(ctx, newVillage(t), "alpha"))
	require.NoError(t, store.MemoryStore.SaveVillage(ctx, newVillage(t), "beta"))

	c, _ := newConsole(t, "2\n", store, newVillage(t))
	require.NoError(t, c.Load(ctx))
	assert.Equal(t, "beta", c.Village().Name)
}

func TestLoad_UnknownNameKeepsCurrentVillage(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.MemoryStore.SaveVillage(ctx, newVillage(t), "TestVillage"))

	current := newVillage(t)
	c, out := newConsole(t, "Atlantis\n", store, current)
	require.NoError(t, c.Load(ctx))

	assert.Same(t, current, c.Village())
	assert.Contains(t, out.String(), `No village named "Atlantis".`)
}

func TestLoad_NoSaves(t *testing.T) {
	store := newRecordingStore()
	c, out := newConsole(t, "", store, newVillage(t))
	require.NoError(t, c.Load(context.Background()))

	assert.Empty(t, store.loadCalls)
	assert.Contains(t, out.String(), "No saved villages.")
}

func TestRun_PlaysThroughCommands(t *testing.T) {
	input := strings.Join([]string{
		"hire Ann farmer",
		"hire Bob wizard",
		"build Castle",
		"day 3",
		"status",
		"workers",
		"projects",
		"quit",
		"day 100",
	}, "\n")
	v := newVillage(t)
	c, out := newConsole(t, input, newRecordingStore(), v)
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Hired Ann as farmer.")
	assert.Contains(t, text, `Unknown occupation "wizard"`)
	assert.Contains(t, text, "Not enough materials for Castle")
	assert.Contains(t, text, "3 days passed.")
	assert.Contains(t, text, "Food 22")
	assert.Contains(t, text, "Buildings: House x3")
	assert.Contains(t, text, "Farewell.")

	// Input after quit is ignored.
	assert.Equal(t, 3, v.DaysElapsed)
}

func TestRun_CapacityMessage(t *testing.T) {
	setup := engine.DefaultSetup()
	setup.MaxWorkers = 1
	v, err := engine.New(setup)
	require.NoError(t, err)

	c, out := newConsole(t, "hire Ann farmer\nhire Bob farmer\n", newRecordingStore(), v)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "No room for Bob: 1/1 workers.")
	assert.Equal(t, 1, v.Population())
}

func TestRun_DayAfterGameOver(t *testing.T) {
	v := newVillage(t)
	v.Resources.Food = 0
	_, err := v.Hire("Ann", "lumberjack")
	require.NoError(t, err)

	c, out := newConsole(t, "day 10\nday\n", newRecordingStore(), v)
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Game over after 5 days.")
	assert.Contains(t, text, "The game is over.")
	assert.Equal(t, 5, v.DaysElapsed)
}

func TestRun_RejectsBadDayCount(t *testing.T) {
	v := newVillage(t)
	c, out := newConsole(t, "day zero\nday -2\n", newRecordingStore(), v)
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 2, strings.Count(out.String(), "Usage: day [n]"))
	assert.Equal(t, 0, v.DaysElapsed)
}

func TestRun_SaveThenLoadThroughCommands(t *testing.T) {
	store := newRecordingStore()
	v := newVillage(t)
	input := "hire Ann farmer\nday 2\nsave\nslot1\nday 4\nload\nslot1\nquit\n"

	c, _ := newConsole(t, input, store, v)
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []string{"slot1"}, store.saveCalls)
	assert.Equal(t, 2, c.Village().DaysElapsed)
	assert.Equal(t, 6, v.DaysElapsed)
}

func TestSummarizeBuildings(t *testing.T) {
	assert.Equal(t, "none", summarizeBuildings(nil))
	assert.Equal(t, "House x2, Farm", summarizeBuildings([]string{"House", "Farm", "House"}))
}
