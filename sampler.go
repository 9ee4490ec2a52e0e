package letterfall

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrSampleCount is returned by SampleIndices when the requested count
// exceeds the population size. This is a programmer error in the caller;
// clamping silently would corrupt the animated population invariant.
var ErrSampleCount = errors.New("sample count exceeds population")

// SampleIndices returns count distinct indices in [0, length), each drawn
// without replacement and with uniform marginal probability. Order of the
// returned indices is unspecified.
//
// The selection runs in O(count) expected time using a sparse override map
// instead of shuffling the full population: picking slot j consumes whatever
// index currently lives there (j itself unless overridden), then the index at
// the tail of the shrinking virtual array is parked in slot j so later picks
// are transparently redirected.
func SampleIndices(rng *rand.Rand, length, count int) ([]int, error) {
	if count > length {
		return nil, fmt.Errorf("letterfall: %w (count %d, population %d)", ErrSampleCount, count, length)
	}
	if count < 0 {
		return nil, fmt.Errorf("letterfall: %w (negative count %d)", ErrSampleCount, count)
	}

	spare := make(map[int]int, count)
	out := make([]int, 0, count)
	remaining := length
	for i := 0; i < count; i++ {
		j := rng.IntN(remaining)
		pick, ok := spare[j]
		if !ok {
			pick = j
		}
		tail := remaining - 1
		tailVal, ok := spare[tail]
		if !ok {
			tailVal = tail
		}
		spare[j] = tailVal
		delete(spare, tail)
		remaining--
		out = append(out, pick)
	}
	return out, nil
}
