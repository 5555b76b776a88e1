package service

import (
	"math/rand/v2"
	"slices"

	"github.com/aliskhannn/simguistic/internal/domain/entities"
)

// Randomizer is the source of queue order. *rand.Rand satisfies it.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
func (globalRandom) IntN(n int) int                     { return rand.IntN(n) }

// prepareQueue returns a shuffled copy of the working set.
// Shuffling alone does not prevent the same word from being drilled twice
// in a row across a round boundary.
func (e *engine) prepareQueue(words []entities.Word) []entities.Word {
	queue := slices.Clone(words)
	e.rnd.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}

// requeue puts w back among the remaining queue items at a uniformly random position.
func (e *engine) requeue(d *entities.Drill, w entities.Word) {
	d.Insert(e.rnd.IntN(len(d.Queue)+1), w)
}

// advance is the gate after an answered word. It finishes the drill when
// the working set is empty, otherwise refills an exhausted queue and moves
// the next word to the cursor.
func (e *engine) advance(d *entities.Drill) bool {
	if len(d.WorkingSet) == 0 {
		d.Finish()
		return false
	}
	if len(d.Queue) == 0 {
		d.Queue = e.prepareQueue(d.WorkingSet)
	}
	return d.Pop()
}
