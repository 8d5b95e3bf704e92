package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockpile_TakeIsAllOrNothing(t *testing.T) {
	s := Stockpile{Food: 1}

	assert.True(t, s.Take(Food, 1))
	assert.Equal(t, 0, s.Food)

	assert.False(t, s.Take(Food, 1))
	assert.Equal(t, 0, s.Food)
}

func TestStockpile_AddIgnoresNonPositive(t *testing.T) {
	s := Stockpile{}
	s.Add(Wood, 3)
	s.Add(Wood, -2)
	s.Add(Wood, 0)
	assert.Equal(t, 3, s.Get(Wood))
}

func TestStockpile_SpendLeavesPoolUntouchedWhenShort(t *testing.T) {
	s := Stockpile{Wood: 3, Metal: 2}

	assert.False(t, s.Spend(5, 4))
	assert.Equal(t, Stockpile{Wood: 3, Metal: 2}, s)

	assert.True(t, s.Spend(3, 1))
	assert.Equal(t, Stockpile{Wood: 0, Metal: 1}, s)
}

func TestStockpile_Clamp(t *testing.T) {
	s := Stockpile{Food: -4, Wood: 2, Metal: -1}
	s.Clamp()
	assert.Equal(t, Stockpile{Food: 0, Wood: 2, Metal: 0}, s)
}

func TestResource_NamesRoundTrip(t *testing.T) {
	for r := Resource(0); r < NumResources; r++ {
		got, ok := ParseResource(r.String())
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
	_, ok := ParseResource("gold")
	assert.False(t, ok)
}
