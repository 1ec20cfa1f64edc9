package enums

import "fmt"

// RoundingStrategy selects the denomination step sale prices are rounded
// up to. All non-none strategies are ceilings: a value already on the step
// stays put, anything else moves to the next multiple.
type RoundingStrategy string

const (
	RoundingNone           RoundingStrategy = "none"
	RoundingNearestFive    RoundingStrategy = "nearest_five"
	RoundingNearestTen     RoundingStrategy = "nearest_ten"
	RoundingNearestFifty   RoundingStrategy = "nearest_fifty"
	RoundingNearestHundred RoundingStrategy = "nearest_hundred"
)

var validRoundingStrategies = []RoundingStrategy{
	RoundingNone,
	RoundingNearestFive,
	RoundingNearestTen,
	RoundingNearestFifty,
	RoundingNearestHundred,
}

// IsValid reports whether the value is a known RoundingStrategy.
func (r RoundingStrategy) IsValid() bool {
	for _, candidate := range validRoundingStrategies {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoundingStrategy converts raw input into a RoundingStrategy.
func ParseRoundingStrategy(value string) (RoundingStrategy, error) {
	for _, candidate := range validRoundingStrategies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rounding strategy %q", value)
}
