package nutrition

import (
	"fmt"
	"math"
	"time"
)

// CampTiming is the time available before the fight
type CampTiming struct {
	DaysRemaining int `json:"days_remaining"`
	CampWeeks     int `json:"camp_weeks"`
}

// civilDate drops the clock and location, keeping the calendar date
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from today to the fight date.
// Both are reduced to their civil date first so time of day and DST
// shifts never change the count.
func DaysBetween(today, fightDate time.Time) int {
	return int(math.Round(civilDate(fightDate).Sub(civilDate(today)).Hours() / 24))
}

// CampTimingFor derives days remaining and camp length in weeks
func CampTimingFor(today, fightDate time.Time, strict bool) (CampTiming, error) {
	days := DaysBetween(today, fightDate)
	if days <= 0 {
		return CampTiming{}, fmt.Errorf("fight date %s is %d days from %s: %w",
			fightDate.Format(time.DateOnly), days, today.Format(time.DateOnly), ErrInvalidDate)
	}
	if strict && days < StrictMinCampDays {
		return CampTiming{}, fmt.Errorf("fight in %d days, strict camps need at least %d: %w",
			days, StrictMinCampDays, ErrInvalidDate)
	}

	weeks := (days + DaysPerWeek - 1) / DaysPerWeek
	if weeks < 1 {
		weeks = 1
	}

	return CampTiming{DaysRemaining: days, CampWeeks: weeks}, nil
}
