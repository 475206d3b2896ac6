package ta

import "math"

func SMA(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		sum += vals[i]
	}
	return sum / float64(n)
}

func Mean(vals []float64) float64 {
	return SMA(vals, len(vals))
}

// StdDev computes the sample standard deviation (Bessel's correction) over the
// last n values. Returns NaN for fewer than 2 values.
func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n < 2 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n-1))
}

// Slope fits a least-squares line through the last n values and returns its
// per-step slope.
func Slope(vals []float64, n int) float64 {
	if len(vals) < n || n < 2 {
		return math.NaN()
	}
	start := len(vals) - n
	sumX, sumY, sumXY, sumXX := 0.0, 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		x := float64(i)
		y := vals[start+i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return math.NaN()
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}

// CAGR returns the compound annual growth rate in percent between the first
// and last value over the given number of years.
func CAGR(first, last, years float64) float64 {
	if first <= 0 || last <= 0 || years <= 0 {
		return math.NaN()
	}
	return (math.Pow(last/first, 1.0/years) - 1.0) * 100.0
}
