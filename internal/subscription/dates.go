package subscription

import "time"

// addMonths advances a date by whole calendar months, keeping the day of
// month and clamping to the last day when the target month is shorter.
// Jan 31 plus one month is Feb 29 in a leap year, not Mar 2.
func addMonths(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, d.Location())

	lastDay := target.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, d.Location())
}
