package services

import "time"

// storedTime returns t in UTC rounded up to the microsecond, the finest
// precision both metadata stores keep. The result is never before t.
func storedTime(t time.Time) time.Time {
	t = t.UTC()
	if r := t.Truncate(time.Microsecond); r.Before(t) {
		return r.Add(time.Microsecond)
	}
	return t.Round(0)
}
