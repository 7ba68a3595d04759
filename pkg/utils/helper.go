package utils

import (
	"math"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// MinorToMajor converts a minor-currency-unit amount (cents) to major units.
func MinorToMajor(minor int64) float64 {
	return float64(minor) / 100.0
}

// Round2 rounds to two decimal places for currency display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
