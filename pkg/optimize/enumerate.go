package optimize

import (
	"github.com/trusspole/trusspole/pkg/truss"
)

// Enumerate returns every admissible per-module diagonal count vector for
// the outline, in lexicographic order. The position in the returned slice is
// the candidate's enumeration index, which makes selection deterministic.
// A module too short to admit any bracing yields an empty set, not an error.
func Enumerate(g truss.Geometry) ([][]int, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	lo := make([]int, len(g.ModuleHeights))
	hi := make([]int, len(g.ModuleHeights))
	for i, h := range g.ModuleHeights {
		var ok bool
		if lo[i], hi[i], ok = truss.DiagonalRange(h); !ok {
			return nil, nil
		}
	}

	var out [][]int
	current := make([]int, len(lo))
	copy(current, lo)
	for {
		v := make([]int, len(current))
		copy(v, current)
		out = append(out, v)

		// Lexicographic successor: bump the last module, carrying left.
		i := len(current) - 1
		for i >= 0 {
			current[i]++
			if current[i] <= hi[i] {
				break
			}
			current[i] = lo[i]
			i--
		}
		if i < 0 {
			return out, nil
		}
	}
}

// SearchSpace returns the number of candidates Enumerate would produce.
func SearchSpace(g truss.Geometry) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	total := 1
	for _, h := range g.ModuleHeights {
		lo, hi, ok := truss.DiagonalRange(h)
		if !ok {
			return 0, nil
		}
		total *= hi - lo + 1
	}
	return total, nil
}
