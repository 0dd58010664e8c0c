// Package freshness holds what every shelf-life estimator shares: the model
// instruction, the question format and the parsing of the answer.
package freshness

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultHours used whenever no estimate is available.
const DefaultHours = 48

// MaxHours upper bound of any accepted shelf life (one year). Larger values
// are treated as invalid.
const MaxHours = 24 * 365

// Instruction system prompt for the estimating model.
const Instruction = "You are a food safety expert. Your task is to estimate the safe consumption shelf life of a food item in hours, assuming it's prepared and stored correctly at room/refrigerated temperature. Respond with ONLY an integer representing the number of hours. Do not add any other text, explanation, or units."

// Question user prompt for foodItem.
func Question(foodItem string) string {
	return fmt.Sprintf("Food item: '%s'. How many hours does it stay fresh?", foodItem)
}

// Valid reports whether hours is a usable shelf life.
func Valid(hours int) bool {
	return hours > 0 && hours <= MaxHours
}

// ParseHours accepts a bare integer in (0, MaxHours], nothing else.
func ParseHours(text string) (int, error) {
	hours, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("model answered %q instead of an integer: %w", text, err)
	}
	if !Valid(hours) {
		return 0, fmt.Errorf("model answered out-of-range hours %d", hours)
	}
	return hours, nil
}
