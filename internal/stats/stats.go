// Package stats computes descriptive statistics over sequences of
// float64 observations. All estimators are population estimators
// (divisor n, not n-1) and quartiles use the nearest-rank method, so
// results will not match packages that interpolate.
package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrNoNumericData is returned when the coerced input contains no
// numeric values. It is a "nothing to compute" condition, distinct from
// a zero-filled result.
var ErrNoNumericData = errors.New("stats: no numeric data")

// Summary is the immutable result record for one Describe call.
type Summary struct {
	Count    int      `json:"count"`
	Sum      float64  `json:"sum"`
	Mean     float64  `json:"mean"`
	Median   float64  `json:"median"`
	Mode     float64  `json:"mode"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Range    float64  `json:"range"`
	Variance float64  `json:"variance"`
	StdDev   float64  `json:"std_dev"`
	Detailed *Moments `json:"detailed,omitempty"`
}

// Moments holds the detailed fields. Skewness and Kurtosis are nil when
// the standard deviation is zero (all values identical); they serialize
// as JSON null rather than NaN.
type Moments struct {
	Q1       float64  `json:"q1"`
	Q3       float64  `json:"q3"`
	IQR      float64  `json:"iqr"`
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`
}

// Describe computes the full summary over values. The input slice is
// not modified. Returns ErrNoNumericData for an empty input.
func Describe(values []float64, detailed bool) (*Summary, error) {
	n := len(values)
	if n == 0 {
		return nil, ErrNoNumericData
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	s := &Summary{
		Count:    n,
		Sum:      sum,
		Mean:     mean,
		Median:   medianSorted(sorted),
		Mode:     modeSorted(sorted),
		Min:      sorted[0],
		Max:      sorted[n-1],
		Variance: Variance(sorted),
	}
	s.Range = s.Max - s.Min
	s.StdDev = math.Sqrt(s.Variance)

	if detailed {
		m := &Moments{
			Q1: quartileSorted(sorted, 1),
			Q3: quartileSorted(sorted, 3),
		}
		m.IQR = m.Q3 - m.Q1
		// Third and fourth standardized moments are undefined when
		// every value is identical.
		if s.StdDev > 0 {
			sk := standardizedMoment(sorted, mean, s.StdDev, 3)
			ku := standardizedMoment(sorted, mean, s.StdDev, 4)
			m.Skewness = &sk
			m.Kurtosis = &ku
		}
		s.Detailed = m
	}

	return s, nil
}

// Mean computes the arithmetic mean. Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of the sorted input: the average of
// the two middle elements for even n, the middle element for odd n.
// Returns 0 for empty input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	return medianSorted(sorted)
}

// Mode returns the most frequent value. When several values share the
// maximum frequency the smallest of them is returned. Returns 0 for
// empty input.
func Mode(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return modeSorted(sortedCopy(values))
}

// Variance computes the population variance (divisor n). Returns 0 for
// empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Quartile returns the q-th quartile (q in {1, 3}) by nearest rank:
// the element at 0-based index n*q/4 of the sorted input. Returns 0
// for empty input.
func Quartile(values []float64, q int) float64 {
	if len(values) == 0 {
		return 0
	}
	return quartileSorted(sortedCopy(values), q)
}

// Skewness computes the population third standardized moment. Returns
// NaN when the input is empty or all values are identical.
func Skewness(values []float64) float64 {
	return moment(values, 3)
}

// Kurtosis computes the population fourth standardized moment. No −3
// excess correction is applied. Returns NaN when the input is empty or
// all values are identical.
func Kurtosis(values []float64) float64 {
	return moment(values, 4)
}

func moment(values []float64, p int) float64 {
	sd := StdDev(values)
	if len(values) == 0 || sd == 0 {
		return math.NaN()
	}
	return standardizedMoment(values, Mean(values), sd, p)
}

func standardizedMoment(values []float64, mean, sd float64, p int) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Pow((v-mean)/sd, float64(p))
	}
	return sum / float64(len(values))
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// modeSorted scans runs of equal values; ties resolve to the smallest
// value because the input is ascending.
func modeSorted(sorted []float64) float64 {
	best := sorted[0]
	bestCount := 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			bestCount = j - i
			best = sorted[i]
		}
		i = j
	}
	return best
}

func quartileSorted(sorted []float64, q int) float64 {
	idx := len(sorted) * q / 4
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func sortedCopy(values []float64) []float64 {
	c := make([]float64, len(values))
	copy(c, values)
	sort.Float64s(c)
	return c
}
