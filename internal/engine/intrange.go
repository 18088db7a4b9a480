package engine

import "golang.org/x/exp/constraints"

// IntRange returns every integer between from and to, both included,
// walking in the direction from -> to.
//
//	IntRange(-1, 4) => [-1 0 1 2 3 4]
//	IntRange(4, -1) => [4 3 2 1 0 -1]
func IntRange[T constraints.Integer](from, to T) []T {
	if from <= to {
		out := make([]T, 0, span(from, to)+1)
		for i := from; ; i++ {
			out = append(out, i)
			if i == to {
				return out
			}
		}
	}

	out := make([]T, 0, span(to, from)+1)
	for i := from; ; i-- {
		out = append(out, i)
		if i == to {
			return out
		}
	}
}

// span is hi-lo computed in 64 bits, so narrow types do not wrap.
func span[T constraints.Integer](lo, hi T) int {
	return int(uint64(hi) - uint64(lo))
}
