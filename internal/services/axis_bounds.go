package services

import "math"

// NiceCeiling rounds value up to 1, 2, 2.5, 5 or 10 times a power of ten.
func NiceCeiling(value float64) float64 {
	if value <= 0 {
		return 1
	}
	exponent := math.Floor(math.Log10(value))
	magnitude := math.Pow(10, exponent)
	fraction := value / magnitude
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		if fraction <= step {
			return step * magnitude
		}
	}
	return 10 * magnitude
}

// AxisBounds returns a value axis range that always includes zero and ends on
// nice round numbers.
func AxisBounds(values []float64) (float64, float64) {
	low, high := 0.0, 0.0
	for _, value := range values {
		low = math.Min(low, value)
		high = math.Max(high, value)
	}

	minimum, maximum := 0.0, NiceCeiling(high)
	if low < 0 {
		minimum = -NiceCeiling(-low)
		if high <= 0 {
			maximum = 0
		}
	}
	return minimum, maximum
}
