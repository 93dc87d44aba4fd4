package dataset

import (
	"fmt"
	"math/rand/v2"
)

var SyntheticTargets = []string{"y1", "y2", "y3", "y4"}

// Synthetic builds an imbalanced fixture of 20*size rows whose label counts
// are 16, 12, 4 and 4 times size. y3 and y4 are shuffled by rng.
func Synthetic(size int, rng *rand.Rand) []Row {
	n := 20 * size
	y1 := block(16*size, n)
	y2 := block(12*size, n)
	y3 := block(4*size, n)
	y4 := block(4*size, n)
	rng.Shuffle(n, func(i, j int) { y3[i], y3[j] = y3[j], y3[i] })
	rng.Shuffle(n, func(i, j int) { y4[i], y4[j] = y4[j], y4[i] })

	rows := make([]Row, n)
	for i := range n {
		rows[i] = Row{
			Index: i,
			Fields: map[string]any{
				"y1": y1[i],
				"y2": y2[i],
				"y3": y3[i],
				"y4": y4[i],
				"x":  fmt.Sprintf("img_%d.jpg", i),
			},
		}
	}
	return rows
}

func block(ones, n int) []int {
	out := make([]int, n)
	for i := range ones {
		out[i] = 1
	}
	return out
}
