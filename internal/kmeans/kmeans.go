package kmeans

import "math"

// Threshold performs k-means clustering with k=2 on a histogram, where
// hist[i] is the number of samples with value i.
//
// Cluster centers start at the lowest and highest populated bins and are
// moved to the mean of their members until the midpoint between them settles.
// The returned value is the first bin of the high cluster, so a sample v
// belongs to the high cluster when v >= Threshold(hist).
// An empty histogram yields 0.
func Threshold(hist []int) int {
	lo, hi := -1, -1
	for i, n := range hist {
		if n == 0 {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	if lo < 0 {
		return 0
	}
	center := [2]float64{float64(lo), float64(hi)}
	threshold := (center[0] + center[1]) / 2.
	etol := math.Pow10(-6)
	for range 300 {
		var highs, lows AverageStore
		for i, n := range hist {
			if n == 0 {
				continue
			}
			if threshold <= float64(i) {
				highs.AddN(float64(i), n)
			} else {
				lows.AddN(float64(i), n)
			}
		}
		if lows.Count() == 0 || highs.Count() == 0 {
			break
		}
		center = [2]float64{lows.Average(), highs.Average()}
		next := (center[0] + center[1]) / 2.
		if diff := math.Abs(next - threshold); diff < etol {
			break
		}
		threshold = next
	}
	return int(math.Ceil(threshold))
}
