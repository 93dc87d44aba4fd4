package oversample

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Dispersion is the sample standard deviation of the label counts. With fewer
// than two labels it is NaN, which never compares lower than any score.
func Dispersion(counts []float64) float64 {
	if len(counts) < 2 {
		return math.NaN()
	}
	return stat.StdDev(counts, nil)
}
