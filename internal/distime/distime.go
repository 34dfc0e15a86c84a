// Package distime converts between wall-clock UTC milliseconds and DIS timestamps.
//
// A DIS timestamp only covers the time past the current hour: one hour is scaled
// onto the 31 bit range (about 1.676 microseconds per unit) and the low bit flags
// the value as absolute. The hour itself travels separately, as hours since the
// Unix epoch.
package distime

import (
	"math"
	"time"
)

// MillisPerHour is the length of one DIS time window.
const MillisPerHour int64 = 3_600_000

// Scale converts milliseconds past the hour into DIS time units.
const Scale = float64(math.MaxInt32) / float64(MillisPerHour)

const absoluteFlag = 1

// HoursSinceEpoch returns the number of whole hours since the Unix epoch.
func HoursSinceEpoch(utcMillis int64) int64 {
	return utcMillis / MillisPerHour
}

// MillisSinceHour returns the milliseconds elapsed in the current hour.
func MillisSinceHour(utcMillis int64) int64 {
	return utcMillis % MillisPerHour
}

// ToDisTimeUnits returns the time past the hour in DIS time units, rounded half
// away from zero.
func ToDisTimeUnits(utcMillis int64) int64 {
	return int64(math.Round(float64(MillisSinceHour(utcMillis)) * Scale))
}

// ToDisTimestamp returns the absolute DIS timestamp for the given time.
// Relative timestamps (bit 0 clear) are never produced.
func ToDisTimestamp(utcMillis int64) uint32 {
	return uint32(ToDisTimeUnits(utcMillis))<<1 | absoluteFlag
}

// IsAbsolute reports whether a DIS timestamp carries the absolute time flag.
func IsAbsolute(timestamp uint32) bool {
	return timestamp&absoluteFlag == absoluteFlag
}

// FromDisTimeUnits converts DIS time units back to milliseconds past the hour.
func FromDisTimeUnits(units int64) int64 {
	return int64(math.Round(float64(units) / Scale))
}

// FromDisTimestamp returns the milliseconds past the hour encoded in a timestamp
// and whether the timestamp was absolute.
func FromDisTimestamp(timestamp uint32) (int64, bool) {
	return FromDisTimeUnits(int64(timestamp >> 1)), IsAbsolute(timestamp)
}

// Join rebuilds UTC milliseconds from an hours-since-epoch value and a timestamp.
func Join(hours int64, timestamp uint32) int64 {
	ms, _ := FromDisTimestamp(timestamp)
	return hours*MillisPerHour + ms
}

// UnixMilli returns t as UTC milliseconds since the Unix epoch.
func UnixMilli(t time.Time) int64 {
	return t.UTC().UnixMilli()
}
