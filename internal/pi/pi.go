// Package pi estimates pi with the Leibniz series.
package pi

// Estimate sums the first terms of the Leibniz series 4 - 4/3 + 4/5 - ...
// Zero or negative terms yield 0. The error of the partial sum is bounded
// by 4/(2*terms+1).
func Estimate(terms int64) float64 {
	sum := 0.0
	sign := 1.0
	for i := int64(0); i < terms; i++ {
		sum += sign * 4.0 / float64(2*i+1)
		sign = -sign
	}
	return sum
}
