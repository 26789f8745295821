package util

import (
	"math"
)

// KmPerMile statute mile in kilometers.
const KmPerMile = 1.609344

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func MilesToKm(miles float64) float64 {
	return miles * KmPerMile
}

func ReverseG[T any](arr []T) {
	for i, j := 0, len(arr)-1; i < j; i, j = i+1, j-1 {
		arr[i], arr[j] = arr[j], arr[i]
	}
}
