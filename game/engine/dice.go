package engine

import (
	"math/rand/v2"
	"sync"
)

// Dice produces die faces in 1..6.
type Dice interface {
	Roll() int
}

// RandomDice rolls a fair six-sided die.
type RandomDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomDice creates a fair die. A zero seed draws from the runtime source;
// any other seed makes the roll sequence reproducible.
func NewRandomDice(seed uint64) *RandomDice {
	d := &RandomDice{}
	if seed != 0 {
		d.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return d
}

// Roll returns a value in 1..6.
func (d *RandomDice) Roll() int {
	if d.rng == nil {
		return rand.IntN(DiceSides) + 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.IntN(DiceSides) + 1
}

// ScriptedDice replays a fixed sequence of faces, then repeats the last one.
// Values outside 1..6 are clamped into range.
type ScriptedDice struct {
	faces []int
	next  int
}

// NewScriptedDice creates dice that return faces in order.
func NewScriptedDice(faces ...int) *ScriptedDice {
	return &ScriptedDice{faces: faces}
}

// Push appends more faces to the script.
func (d *ScriptedDice) Push(faces ...int) {
	d.faces = append(d.faces, faces...)
}

// Remaining reports how many scripted faces are left.
func (d *ScriptedDice) Remaining() int {
	return max(len(d.faces)-d.next, 0)
}

// Roll returns the next scripted face.
func (d *ScriptedDice) Roll() int {
	if len(d.faces) == 0 {
		return 1
	}
	i := min(d.next, len(d.faces)-1)
	d.next++
	return min(max(d.faces[i], 1), DiceSides)
}
