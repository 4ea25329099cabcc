package recur_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moneta-dev/moneta/internal/recur"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	type testCase struct {
		name string
		in   string
		want recur.Period
	}

	tests := []testCase{
		{name: "None", in: "none", want: recur.PeriodNone},
		{name: "Once", in: "once", want: recur.PeriodOnce},
		{name: "Weekly", in: "weekly", want: recur.PeriodWeekly},
		{name: "Monthly", in: "monthly", want: recur.PeriodMonthly},
		{name: "Quarterly", in: "quarterly", want: recur.PeriodQuarterly},
		{name: "Yearly", in: "yearly", want: recur.PeriodYearly},
		{name: "MixedCase", in: "Monthly", want: recur.PeriodMonthly},
		{name: "Padded", in: " weekly ", want: recur.PeriodWeekly},
		{name: "UnknownFallsBackToMonthly", in: "blue_moon", want: recur.PeriodMonthly},
		{name: "EmptyFallsBackToMonthly", in: "", want: recur.PeriodMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recur.Parse(tt.in))
		})
	}
}

func TestPeriod_Recurring(t *testing.T) {
	assert.False(t, recur.PeriodNone.Recurring())
	assert.False(t, recur.PeriodOnce.Recurring())
	assert.True(t, recur.PeriodWeekly.Recurring())
	assert.True(t, recur.PeriodMonthly.Recurring())
	assert.True(t, recur.PeriodQuarterly.Recurring())
	assert.True(t, recur.PeriodYearly.Recurring())
	assert.True(t, recur.Period("blue_moon").Recurring())
}

func TestNext(t *testing.T) {
	type testCase struct {
		name     string
		anchor   time.Time
		period   recur.Period
		ref      time.Time
		justPaid bool
		want     time.Time
	}

	tests := []testCase{
		{
			// Jan 10 -> Feb 10 -> Mar 10 (< ref) -> Apr 10.
			name:   "MonthlyStepsPastReference",
			anchor: date(2024, 1, 10),
			period: recur.PeriodMonthly,
			ref:    date(2024, 3, 15),
			want:   date(2024, 4, 10),
		},
		{
			name:   "MonthlyLandsExactlyOnReference",
			anchor: date(2024, 1, 10),
			period: recur.PeriodMonthly,
			ref:    date(2024, 2, 10),
			want:   date(2024, 2, 10),
		},
		{
			name:   "FutureAnchorUnchanged",
			anchor: date(2024, 6, 1),
			period: recur.PeriodMonthly,
			ref:    date(2024, 3, 15),
			want:   date(2024, 6, 1),
		},
		{
			name:   "AnchorEqualsReference",
			anchor: date(2024, 3, 15),
			period: recur.PeriodWeekly,
			ref:    date(2024, 3, 15),
			want:   date(2024, 3, 15),
		},
		{
			name:     "JustPaidAdvancesExactlyOnePeriod",
			anchor:   date(2024, 1, 10),
			period:   recur.PeriodMonthly,
			ref:      date(2024, 3, 15),
			justPaid: true,
			want:     date(2024, 2, 10),
		},
		{
			name:     "JustPaidIgnoresReferenceBeforeAnchor",
			anchor:   date(2024, 1, 10),
			period:   recur.PeriodMonthly,
			ref:      date(2024, 1, 5),
			justPaid: true,
			want:     date(2024, 2, 10),
		},
		{
			name:     "JustPaidYearsInThePast",
			anchor:   date(2020, 1, 10),
			period:   recur.PeriodMonthly,
			ref:      date(2024, 3, 15),
			justPaid: true,
			want:     date(2020, 2, 10),
		},
		{
			name:   "WeeklySteps",
			anchor: date(2024, 1, 1),
			period: recur.PeriodWeekly,
			ref:    date(2024, 1, 10),
			want:   date(2024, 1, 15),
		},
		{
			name:   "QuarterlySteps",
			anchor: date(2024, 1, 15),
			period: recur.PeriodQuarterly,
			ref:    date(2024, 5, 1),
			want:   date(2024, 7, 15),
		},
		{
			name:   "YearlySteps",
			anchor: date(2022, 6, 1),
			period: recur.PeriodYearly,
			ref:    date(2024, 1, 1),
			want:   date(2024, 6, 1),
		},
		{
			name:   "UnknownPeriodBehavesMonthly",
			anchor: date(2024, 1, 10),
			period: recur.Period("blue_moon"),
			ref:    date(2024, 3, 15),
			want:   date(2024, 4, 10),
		},
		{
			name:   "NonRecurringReturnsAnchor",
			anchor: date(2024, 1, 10),
			period: recur.PeriodNone,
			ref:    date(2024, 3, 15),
			want:   date(2024, 1, 10),
		},
		{
			name:   "TimeOfDayIgnored",
			anchor: time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC),
			period: recur.PeriodMonthly,
			ref:    time.Date(2024, 2, 10, 6, 0, 0, 0, time.UTC),
			want:   date(2024, 2, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recur.Next(tt.anchor, tt.period, tt.ref, tt.justPaid)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_MonthEndClamping(t *testing.T) {
	type testCase struct {
		name   string
		anchor time.Time
		period recur.Period
		ref    time.Time
		want   time.Time
	}

	tests := []testCase{
		{
			name:   "Jan31IntoShortFebruary",
			anchor: date(2023, 1, 31),
			period: recur.PeriodMonthly,
			ref:    date(2023, 2, 1),
			want:   date(2023, 2, 28),
		},
		{
			name:   "Jan31IntoLeapFebruary",
			anchor: date(2024, 1, 31),
			period: recur.PeriodMonthly,
			ref:    date(2024, 2, 1),
			want:   date(2024, 2, 29),
		},
		{
			// The anchor day survives the shorter month in between.
			name:   "AnchorDayRestoredAfterFebruary",
			anchor: date(2024, 1, 31),
			period: recur.PeriodMonthly,
			ref:    date(2024, 3, 1),
			want:   date(2024, 3, 31),
		},
		{
			name:   "May31IntoThirtyDayJune",
			anchor: date(2024, 5, 31),
			period: recur.PeriodMonthly,
			ref:    date(2024, 6, 1),
			want:   date(2024, 6, 30),
		},
		{
			name:   "QuarterlyNov30IntoFebruary",
			anchor: date(2023, 11, 30),
			period: recur.PeriodQuarterly,
			ref:    date(2024, 1, 15),
			want:   date(2024, 2, 29),
		},
		{
			name:   "YearlyLeapDay",
			anchor: date(2024, 2, 29),
			period: recur.PeriodYearly,
			ref:    date(2024, 6, 1),
			want:   date(2025, 2, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recur.Next(tt.anchor, tt.period, tt.ref, false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_NeverBeforeReference(t *testing.T) {
	periods := []recur.Period{
		recur.PeriodWeekly,
		recur.PeriodMonthly,
		recur.PeriodQuarterly,
		recur.PeriodYearly,
	}

	anchors := []time.Time{
		date(2020, 1, 1),
		date(2023, 1, 31),
		date(2024, 2, 29),
		date(2024, 12, 31),
	}

	ref := date(2025, 3, 15)

	for _, p := range periods {
		for _, anchor := range anchors {
			got := recur.Next(anchor, p, ref, false)
			assert.False(t, got.Before(ref), "period %s anchor %s produced %s", p, anchor, got)
		}
	}
}

func TestWindow(t *testing.T) {
	type testCase struct {
		name      string
		anchor    time.Time
		period    recur.Period
		end       *time.Time
		at        time.Time
		wantStart time.Time
		wantStop  time.Time
		wantOK    bool
	}

	endJun1 := date(2024, 6, 1)
	endMar20 := date(2024, 3, 20)
	endDec31 := date(2024, 12, 31)

	tests := []testCase{
		{
			name:      "MonthlyMidPeriod",
			anchor:    date(2024, 1, 15),
			period:    recur.PeriodMonthly,
			at:        date(2024, 3, 20),
			wantStart: date(2024, 3, 15),
			wantStop:  date(2024, 4, 14),
			wantOK:    true,
		},
		{
			name:      "MonthlyOnBoundaryDay",
			anchor:    date(2024, 1, 15),
			period:    recur.PeriodMonthly,
			at:        date(2024, 3, 15),
			wantStart: date(2024, 3, 15),
			wantStop:  date(2024, 4, 14),
			wantOK:    true,
		},
		{
			name:      "FirstWindowIncludesAnchorDay",
			anchor:    date(2024, 1, 15),
			period:    recur.PeriodMonthly,
			at:        date(2024, 1, 15),
			wantStart: date(2024, 1, 15),
			wantStop:  date(2024, 2, 14),
			wantOK:    true,
		},
		{
			name:      "WeeklyWindow",
			anchor:    date(2024, 1, 1),
			period:    recur.PeriodWeekly,
			at:        date(2024, 1, 18),
			wantStart: date(2024, 1, 15),
			wantStop:  date(2024, 1, 21),
			wantOK:    true,
		},
		{
			name:      "MonthEndAnchor",
			anchor:    date(2024, 1, 31),
			period:    recur.PeriodMonthly,
			at:        date(2024, 2, 15),
			wantStart: date(2024, 1, 31),
			wantStop:  date(2024, 2, 28),
			wantOK:    true,
		},
		{
			name:   "BeforeAnchor",
			anchor: date(2024, 1, 15),
			period: recur.PeriodMonthly,
			at:     date(2024, 1, 10),
			wantOK: false,
		},
		{
			name:   "AfterEnd",
			anchor: date(2024, 1, 15),
			period: recur.PeriodMonthly,
			end:    &endJun1,
			at:     date(2024, 7, 1),
			wantOK: false,
		},
		{
			name:      "StopClampedToEnd",
			anchor:    date(2024, 1, 15),
			period:    recur.PeriodMonthly,
			end:       &endMar20,
			at:        date(2024, 3, 18),
			wantStart: date(2024, 3, 15),
			wantStop:  date(2024, 3, 20),
			wantOK:    true,
		},
		{
			name:      "NonRecurringFixedWindow",
			anchor:    date(2024, 1, 1),
			period:    recur.PeriodNone,
			end:       &endDec31,
			at:        date(2024, 6, 1),
			wantStart: date(2024, 1, 1),
			wantStop:  date(2024, 12, 31),
			wantOK:    true,
		},
		{
			name:      "NonRecurringOpenEndedRunsThroughAt",
			anchor:    date(2024, 1, 1),
			period:    recur.PeriodOnce,
			at:        date(2024, 6, 1),
			wantStart: date(2024, 1, 1),
			wantStop:  date(2024, 6, 1),
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, stop, ok := recur.Window(tt.anchor, tt.period, tt.end, tt.at)
			assert.Equal(t, tt.wantOK, ok)

			if !tt.wantOK {
				return
			}

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantStop, stop)
		})
	}
}

func TestWindow_ConsecutiveWindowsTile(t *testing.T) {
	anchor := date(2024, 1, 15)

	_, stop, ok := recur.Window(anchor, recur.PeriodMonthly, nil, date(2024, 2, 20))
	assert.True(t, ok)

	nextStart, _, ok := recur.Window(anchor, recur.PeriodMonthly, nil, stop.AddDate(0, 0, 1))
	assert.True(t, ok)
	assert.Equal(t, stop.AddDate(0, 0, 1), nextStart)
}
