package search

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// GenerateDatePairs expands the request's date shape into the ordered list of
// candidate (departure, return) pairs. Exactly one shape is selected, first
// match wins:
//
//  1. year + month + departure/return weekday: one pair per matching weekday
//     in the month, return clamped to the same month
//  2. year + month: a one-way sweep over every day of the month
//  3. durationDays: a rolling 30-day window starting today (UTC)
//  4. explicit departure + return dates, trimmed; blank-after-trim counts
//     as absent
//  5. fallback: depart a week from now, return DefaultDurationDays later
//
// now anchors the relative shapes so results are reproducible in tests.
func GenerateDatePairs(req SearchRequest, now time.Time) ([]DatePair, error) {
	if err := validateDateComponents(req); err != nil {
		return nil, err
	}

	departureDate := strings.TrimSpace(req.DepartureDate)
	returnDate := strings.TrimSpace(req.ReturnDate)

	switch {
	case req.Year != nil && req.Month != nil && req.DepartureDayOfWeek != nil && req.ReturnDayOfWeek != nil:
		return weekdayPairs(*req.Year, *req.Month, *req.DepartureDayOfWeek, *req.ReturnDayOfWeek), nil

	case req.Year != nil && req.Month != nil:
		return monthSweep(*req.Year, *req.Month), nil

	case req.DurationDays != nil:
		return durationPairs(*req.DurationDays, now), nil

	case departureDate != "" && returnDate != "":
		return []DatePair{{Departure: departureDate, Return: returnDate}}, nil

	default:
		dep := now.UTC().AddDate(0, 0, 7)
		ret := dep.AddDate(0, 0, DefaultDurationDays)
		return []DatePair{{Departure: dep.Format(dateLayout), Return: ret.Format(dateLayout)}}, nil
	}
}

func validateDateComponents(req SearchRequest) error {
	if req.Month != nil && (*req.Month < 1 || *req.Month > 12) {
		return NewInvalidRequestError(fmt.Sprintf("month must be between 1 and 12, got %d", *req.Month))
	}
	if req.Year != nil && *req.Year < 1 {
		return NewInvalidRequestError(fmt.Sprintf("year must be positive, got %d", *req.Year))
	}
	return nil
}

func weekdayPairs(year, month int, departureDay, returnDay time.Weekday) []DatePair {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var pairs []DatePair
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != departureDay {
			continue
		}
		ret := nextWeekday(d, returnDay)
		if !ret.After(last) {
			pairs = append(pairs, DatePair{
				Departure: d.Format(dateLayout),
				Return:    ret.Format(dateLayout),
			})
		}
	}
	return pairs
}

func monthSweep(year, month int) []DatePair {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var pairs []DatePair
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		pairs = append(pairs, DatePair{Departure: d.Format(dateLayout)})
	}
	return pairs
}

func durationPairs(durationDays int, now time.Time) []DatePair {
	start := now.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 30)

	var pairs []DatePair
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		pairs = append(pairs, DatePair{
			Departure: d.Format(dateLayout),
			Return:    d.AddDate(0, 0, durationDays).Format(dateLayout),
		})
	}
	return pairs
}

// nextWeekday returns the next occurrence of target strictly after start when
// the weekdays coincide: a same-day return pair is never valid.
func nextWeekday(start time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(start.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return start.AddDate(0, 0, days)
}
