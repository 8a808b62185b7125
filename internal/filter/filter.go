// Package filter decides per-row validity before aggregation. Rules are
// built once from config and applied to every derived trip; rejected rows
// are counted per reason so the report can surface how much data was
// dropped.
package filter

import (
	"github.com/backmassage/faremeter/internal/config"
	"github.com/backmassage/faremeter/internal/metrics"
)

// Rules holds the validity bounds applied before aggregation. Zero values
// are meaningful (MinDurationMinutes 0 admits sub-minute trips), so build
// Rules through FromConfig rather than literal structs.
type Rules struct {
	MinDurationMinutes float64 // exclusive lower bound
	MaxDurationMinutes float64 // exclusive upper bound
	PositiveFare       bool
	PositiveDistance   bool
	KnownRateCodesOnly bool
}

// Drops counts rejected rows by reason. A row is counted once, against the
// first rule that rejects it, in the order duration, fare, distance, rate
// code.
type Drops struct {
	Duration int
	Fare     int
	Distance int
	RateCode int
}

// Total returns the number of rows rejected across all reasons.
func (d Drops) Total() int {
	return d.Duration + d.Fare + d.Distance + d.RateCode
}

// FromConfig builds the rule set from runtime configuration.
func FromConfig(cfg *config.Config) Rules {
	return Rules{
		MinDurationMinutes: cfg.MinDurationMinutes,
		MaxDurationMinutes: cfg.MaxDurationMinutes,
		PositiveFare:       cfg.RequirePositiveFare,
		PositiveDistance:   cfg.RequirePositiveDistance,
		KnownRateCodesOnly: cfg.KnownRateCodesOnly,
	}
}

// Keep reports whether the trip passes all rules.
func (r Rules) Keep(t metrics.Trip) bool {
	ok, _ := r.check(t)
	return ok
}

// Apply filters trips in place order-preservingly and returns the kept
// slice alongside per-reason drop counts.
func (r Rules) Apply(trips []metrics.Trip) ([]metrics.Trip, Drops) {
	var drops Drops
	kept := trips[:0]
	for _, t := range trips {
		ok, reason := r.check(t)
		if !ok {
			switch reason {
			case reasonDuration:
				drops.Duration++
			case reasonFare:
				drops.Fare++
			case reasonDistance:
				drops.Distance++
			case reasonRateCode:
				drops.RateCode++
			}
			continue
		}
		kept = append(kept, t)
	}
	return kept, drops
}

type rejectReason int

const (
	reasonNone rejectReason = iota
	reasonDuration
	reasonFare
	reasonDistance
	reasonRateCode
)

func (r Rules) check(t metrics.Trip) (bool, rejectReason) {
	// Duration positivity is enforced upstream by metrics.Derive; the
	// bounds here are the configurable outlier policy on top of it.
	if t.DurationMinutes <= r.MinDurationMinutes || t.DurationMinutes >= r.MaxDurationMinutes {
		return false, reasonDuration
	}
	if r.PositiveFare && t.TotalAmount <= 0 {
		return false, reasonFare
	}
	if r.PositiveDistance && t.TripDistance <= 0 {
		return false, reasonDistance
	}
	if r.KnownRateCodesOnly && !t.RateCode.Known() {
		return false, reasonRateCode
	}
	return true, reasonNone
}
