// Package recur implements recurrence date math shared by bill
// projection and budget periods. All functions are pure and operate at
// day precision in UTC.
package recur

import (
	"strings"
	"time"
)

// Period represents how often a bill or budget repeats.
type Period string

const (
	PeriodNone      Period = "none"
	PeriodOnce      Period = "once"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Parse normalizes a free-form period string. Unrecognized values fall
// back to monthly rather than failing; none and once are the only
// non-recurring periods.
func Parse(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodNone:
		return PeriodNone
	case PeriodOnce:
		return PeriodOnce
	case PeriodWeekly:
		return PeriodWeekly
	case PeriodMonthly:
		return PeriodMonthly
	case PeriodQuarterly:
		return PeriodQuarterly
	case PeriodYearly:
		return PeriodYearly
	default:
		return PeriodMonthly
	}
}

// Recurring reports whether the period produces repeated occurrences.
func (p Period) Recurring() bool {
	switch Parse(string(p)) {
	case PeriodNone, PeriodOnce:
		return false
	default:
		return true
	}
}

// Next returns the next occurrence of a schedule anchored at anchor, on
// or after ref.
//
// When justPaid is true the anchor's occurrence was just settled, so the
// result is exactly one period after the anchor regardless of ref: the
// bill after the one that was paid, not the first unpaid one in the
// past. Otherwise a future anchor is returned unchanged, and a past
// anchor is advanced whole periods until it reaches ref.
//
// Non-recurring periods always return the anchor itself.
func Next(anchor time.Time, p Period, ref time.Time, justPaid bool) time.Time {
	p = Parse(string(p))
	anchor = Day(anchor)
	ref = Day(ref)

	if !p.Recurring() {
		return anchor
	}

	if justPaid {
		return step(anchor, p, 1)
	}

	if anchor.After(ref) {
		return anchor
	}

	next := anchor
	for n := 1; next.Before(ref); n++ {
		next = step(anchor, p, n)
	}

	return next
}

// Window returns the period-aligned window [start, stop] containing at,
// with windows anchored at anchor and advancing whole periods. stop is
// the day before the next window starts, inclusive. ok is false when at
// falls before the anchor or after end.
//
// A non-recurring period yields the fixed window from anchor to end;
// with no end date that window runs through at.
func Window(anchor time.Time, p Period, end *time.Time, at time.Time) (start, stop time.Time, ok bool) {
	p = Parse(string(p))
	anchor = Day(anchor)
	at = Day(at)

	if at.Before(anchor) {
		return time.Time{}, time.Time{}, false
	}

	var until time.Time
	if end != nil {
		until = Day(*end)
		if at.After(until) {
			return time.Time{}, time.Time{}, false
		}
	}

	if !p.Recurring() {
		stop = at
		if end != nil {
			stop = until
		}

		return anchor, stop, true
	}

	start = anchor
	for n := 1; ; n++ {
		next := step(anchor, p, n)
		if next.After(at) {
			stop = next.AddDate(0, 0, -1)
			break
		}

		start = next
	}

	if end != nil && stop.After(until) {
		stop = until
	}

	return start, stop, true
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// step computes anchor advanced by n whole periods. Month-based periods
// are computed from the anchor each time so the anchor's day-of-month is
// preserved across steps, clamping to the target month's last day when
// the month is shorter (Jan 31 -> Feb 28 -> Mar 31).
func step(anchor time.Time, p Period, n int) time.Time {
	switch p {
	case PeriodWeekly:
		return anchor.AddDate(0, 0, 7*n)
	case PeriodQuarterly:
		return addMonths(anchor, 3*n)
	case PeriodYearly:
		return addMonths(anchor, 12*n)
	default:
		return addMonths(anchor, n)
	}
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()

	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
