package metrics

// Mean returns the arithmetic mean of values, or fallback when values is empty.
// Aggregation stages default to a neutral 0.5 rather than failing on empty
// collections.
func Mean(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the population variance of values, or 0 when fewer than
// two values are present.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values, 0)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to the unit interval, the domain of every confidence and
// efficiency value in the engine.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
