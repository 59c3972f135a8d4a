package analytics

import (
	"time"

	"github.com/horologe/storefront/internal/domain/shared"
)

// Period selects the reporting window and bucket granularity
type Period string

const (
	PeriodDay   Period = "Day"
	PeriodWeek  Period = "Week"
	PeriodMonth Period = "Month"
	PeriodYear  Period = "Year"
)

// ParsePeriod converts a wire token into a Period
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", shared.NewValidationError("invalid period %q, expected Day, Week, Month or Year", s)
}

// Bucket is a half-open time interval [Start, End)
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the bucket
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Buckets returns the fixed-length bucket sequence for the period relative
// to now, oldest first, in now's location:
//
//	Day   24 hourly buckets of the current day
//	Week  7 daily buckets ending today
//	Month 30 daily buckets ending today
//	Year  12 monthly buckets of the current calendar year
func (p Period) Buckets(now time.Time) []Bucket {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case PeriodDay:
		out := make([]Bucket, 24)
		for h := 0; h < 24; h++ {
			start := time.Date(y, m, d, h, 0, 0, 0, loc)
			out[h] = Bucket{Label: start.Format("15:04"), Start: start, End: start.Add(time.Hour)}
		}
		return out
	case PeriodWeek:
		return dailyBuckets(today, 7)
	case PeriodMonth:
		return dailyBuckets(today, 30)
	case PeriodYear:
		out := make([]Bucket, 12)
		for i := 0; i < 12; i++ {
			start := time.Date(y, time.Month(i+1), 1, 0, 0, 0, 0, loc)
			out[i] = Bucket{Label: start.Format("Jan"), Start: start, End: start.AddDate(0, 1, 0)}
		}
		return out
	}
	return nil
}

func dailyBuckets(today time.Time, n int) []Bucket {
	out := make([]Bucket, n)
	first := today.AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		start := first.AddDate(0, 0, i)
		out[i] = Bucket{Label: start.Format("Jan 02"), Start: start, End: start.AddDate(0, 0, 1)}
	}
	return out
}

// Range returns the overall [from, to) window covered by the buckets
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	buckets := p.Buckets(now)
	if len(buckets) == 0 {
		return now, now
	}
	return buckets[0].Start, buckets[len(buckets)-1].End
}
