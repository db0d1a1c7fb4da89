// Package broadcastday computes broadcast-day boundaries and rolling windows.
//
// A channel's broadcast day does not start at midnight but at a configured
// wall-clock time of day (06:00 is typical). Until that time has passed, the
// current broadcast day is still the one that started yesterday: a viewer at
// 03:00 is watching the tail of yesterday's lineup. All math is done in the
// reference instant's location, never UTC-normalized, matching the wall-clock
// semantics of the event timestamps in the database.
package broadcastday

import "time"

// DayStart returns the unix timestamp of the most recent occurrence of the
// configured (hh, mm) time of day at or before ref. When ref falls before
// today's occurrence, exactly 24 hours (in absolute seconds) are subtracted.
func DayStart(hh, mm int, ref time.Time) int64 {
	d := time.Date(ref.Year(), ref.Month(), ref.Day(), hh, mm, 0, 0, ref.Location())
	ts := d.Unix()
	if ref.Before(d) { // early morning, yesterday's broadcast day is still on
		ts -= 24 * 3600
	}
	return ts
}

// Window returns [start, start+dur) as unix timestamps
func Window(start int64, dur time.Duration) (int64, int64) {
	return start, start + int64(dur/time.Second)
}
