package common

import "math"

// Round rounds half away from zero.
func Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

// DecimalToFixed rounds num to precision decimal places.
func DecimalToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(Round(num*output)) / output
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
