// Package dataset defines the trip-record model and the table sources that
// load it. A TableSource reads one columnar file (or an in-memory slice in
// tests) into []TripRecord; all later stages operate on that slice and
// never touch the source files again.
package dataset

import (
	"strconv"
	"time"
)

// RateCode is the TLC fare-type code attached to every trip.
type RateCode int

// Standard TLC rate codes. Values outside 1-6 occur in real data (99 is a
// common sentinel for "unknown") and are dropped by the default filter.
const (
	RateStandard   RateCode = 1
	RateJFK        RateCode = 2
	RateNewark     RateCode = 3
	RateNassau     RateCode = 4
	RateNegotiated RateCode = 5
	RateGroupRide  RateCode = 6
)

var rateCodeNames = map[RateCode]string{
	RateStandard:   "Standard",
	RateJFK:        "JFK",
	RateNewark:     "Newark",
	RateNassau:     "Nassau/Westchester",
	RateNegotiated: "Negotiated",
	RateGroupRide:  "Group Ride",
}

// Known reports whether the code is one of the six standard TLC rate codes.
func (c RateCode) Known() bool {
	return c >= RateStandard && c <= RateGroupRide
}

// Name returns the human-readable fare-type name, or "Code N" for
// non-standard codes so they stay identifiable when the filter admits them.
func (c RateCode) Name() string {
	if n, ok := rateCodeNames[c]; ok {
		return n
	}
	return "Code " + strconv.Itoa(int(c))
}

// KnownRateCodes returns the six standard codes in ascending order, for
// deterministic iteration in reports and charts.
func KnownRateCodes() []RateCode {
	return []RateCode{RateStandard, RateJFK, RateNewark, RateNassau, RateNegotiated, RateGroupRide}
}

// TripRecord is one taxi trip as loaded from a trip-record file. Derived
// metrics live in the metrics package, not here.
type TripRecord struct {
	Pickup       time.Time
	Dropoff      time.Time
	TripDistance float64 // miles
	TotalAmount  float64 // dollars
	RateCode     RateCode
}

// DurationMinutes returns the trip duration in minutes. Negative when the
// timestamps are out of order; callers must treat non-positive values as
// undefined.
func (r TripRecord) DurationMinutes() float64 {
	return r.Dropoff.Sub(r.Pickup).Minutes()
}
