package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker_StartsFed(t *testing.T) {
	w := NewWorker("John", "farmer", 3)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "John", w.Name)
	assert.Equal(t, "farmer", w.Occupation)
	assert.Equal(t, 3, w.HiredDay)
	assert.False(t, w.Hungry)
	assert.Equal(t, 0, w.DaysHungry)
}

func TestNewWorker_IDsAreDistinctForSameName(t *testing.T) {
	a := NewWorker("John", "miner", 0)
	b := NewWorker("John", "miner", 0)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestApplyRation_FedResetsCounter(t *testing.T) {
	w := NewWorker("Jane", "miner", 0)
	w.Starve()
	w.Starve()
	require.Equal(t, 2, w.DaysHungry)

	dead := w.ApplyRation(true, DefaultDeathThreshold)

	assert.False(t, dead)
	assert.False(t, w.Hungry)
	assert.Equal(t, 0, w.DaysHungry)
}

func TestApplyRation_DiesOnFifthUnfedDay(t *testing.T) {
	w := NewWorker("Doe", "miner", 0)

	for day := 1; day <= 4; day++ {
		dead := w.ApplyRation(false, DefaultDeathThreshold)
		require.False(t, dead, "day %d", day)
		assert.True(t, w.Hungry)
		assert.Equal(t, day, w.DaysHungry)
	}

	assert.True(t, w.ApplyRation(false, DefaultDeathThreshold))
	assert.Equal(t, 5, w.DaysHungry)
}

func TestStarved_NonPositiveThresholdUsesDefault(t *testing.T) {
	w := &Worker{DaysHungry: DefaultDeathThreshold - 1}
	assert.False(t, w.Starved(0))
	w.DaysHungry++
	assert.True(t, w.Starved(-1))
}
