package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomDiceRange(t *testing.T) {
	for _, d := range []*RandomDice{NewRandomDice(0), NewRandomDice(42)} {
		seen := map[int]bool{}
		for i := 0; i < 600; i++ {
			v := d.Roll()
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, DiceSides)
			seen[v] = true
		}
		assert.Len(t, seen, DiceSides)
	}
}

func TestRandomDiceSeedIsReproducible(t *testing.T) {
	a, b := NewRandomDice(7), NewRandomDice(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(), b.Roll())
	}
}

func TestScriptedDice(t *testing.T) {
	d := NewScriptedDice(1, 6, 9, 0)
	assert.Equal(t, 4, d.Remaining())
	assert.Equal(t, 1, d.Roll())
	assert.Equal(t, 6, d.Roll())
	assert.Equal(t, 6, d.Roll(), "clamped high")
	assert.Equal(t, 1, d.Roll(), "clamped low")
	assert.Equal(t, 0, d.Remaining())
	assert.Equal(t, 1, d.Roll(), "repeats last face")

	d.Push(3)
	assert.Equal(t, 3, d.Roll())

	assert.Equal(t, 1, NewScriptedDice().Roll())
}
