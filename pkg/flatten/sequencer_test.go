package flatten

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(index int) FileResult {
	return FileResult{Index: index, RelPath: "file", Content: []byte("x")}
}

func TestSequencerInOrder(t *testing.T) {
	seq := NewSequencer()

	for i := 0; i < 5; i++ {
		run := seq.Push(result(i))
		require.Len(t, run, 1)
		assert.Equal(t, i, run[0].Index)
	}

	assert.Equal(t, 0, seq.Pending())
	assert.Equal(t, 0, seq.HighWater())
	assert.Equal(t, 5, seq.Next())
}

func TestSequencerReverseOrder(t *testing.T) {
	seq := NewSequencer()

	for i := 4; i > 0; i-- {
		assert.Nil(t, seq.Push(result(i)))
	}
	assert.Equal(t, 4, seq.Pending())

	run := seq.Push(result(0))
	require.Len(t, run, 5)
	for i, res := range run {
		assert.Equal(t, i, res.Index)
	}

	assert.Equal(t, 0, seq.Pending())
	assert.Equal(t, 4, seq.HighWater())
}

func TestSequencerGapHoldsSuccessors(t *testing.T) {
	seq := NewSequencer()

	run := seq.Push(result(0))
	require.Len(t, run, 1)

	// 2 and 3 must wait for 1.
	assert.Nil(t, seq.Push(result(2)))
	assert.Nil(t, seq.Push(result(3)))
	assert.Equal(t, 2, seq.Pending())

	run = seq.Push(result(1))
	require.Len(t, run, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{run[0].Index, run[1].Index, run[2].Index})
}

func TestSequencerRandomPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 100; trial++ {
		const n = 20
		perm := rng.Perm(n)

		seq := NewSequencer()
		var emitted []int
		for _, index := range perm {
			for _, res := range seq.Push(result(index)) {
				emitted = append(emitted, res.Index)
			}
		}

		require.Len(t, emitted, n)
		for i, index := range emitted {
			require.Equal(t, i, index, "permutation %v", perm)
		}
		require.Equal(t, 0, seq.Pending())
	}
}
