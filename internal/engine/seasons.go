package engine

import "fmt"

// Calendar constants.
const (
	DaysPerSeason = 90
	DaysPerYear   = 4 * DaysPerSeason
)

// Season constants.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// SeasonName returns a human-readable season name.
func SeasonName(season uint8) string {
	switch season {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// SeasonOf returns the season a day falls in. Day 0 counts as Spring.
func SeasonOf(day int) uint8 {
	if day <= 0 {
		return SeasonSpring
	}
	return uint8(((day - 1) / DaysPerSeason) % 4)
}

// Calendar returns a human-readable date for a day number (day 1 is the
// first day of Spring, Year 1). Day 0 is the founding day.
func Calendar(day int) string {
	if day <= 0 {
		return "Founding Day"
	}
	d := day - 1
	year := d/DaysPerYear + 1
	return fmt.Sprintf("%s Day %d, Year %d", SeasonName(SeasonOf(day)), d%DaysPerSeason+1, year)
}
