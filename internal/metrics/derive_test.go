package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/backmassage/faremeter/internal/dataset"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func rec(durMin float64, amount, distance float64) dataset.TripRecord {
	return dataset.TripRecord{
		Pickup:       t0,
		Dropoff:      t0.Add(time.Duration(durMin * float64(time.Minute))),
		TotalAmount:  amount,
		TripDistance: distance,
		RateCode:     dataset.RateStandard,
	}
}

func TestDerive_CostPerMinute(t *testing.T) {
	trips, stats := Derive([]dataset.TripRecord{rec(10, 20, 2.5)})
	if stats.Out != 1 || stats.Degenerate != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	tr := trips[0]
	if tr.DurationMinutes != 10 {
		t.Errorf("DurationMinutes = %v, want 10", tr.DurationMinutes)
	}
	if tr.CostPerMinute != 2.0 {
		t.Errorf("CostPerMinute = %v, want 2.0", tr.CostPerMinute)
	}
	if tr.CostPerMile != 8.0 {
		t.Errorf("CostPerMile = %v, want 8.0", tr.CostPerMile)
	}
}

func TestDerive_ExcludesDegenerateDurations(t *testing.T) {
	tests := []struct {
		name   string
		rec    dataset.TripRecord
		wantIn bool
	}{
		{"positive duration", rec(10, 20, 1), true},
		{"zero duration", rec(0, 5, 1), false},
		{"negative duration", rec(-3, 5, 1), false},
		{"one second", rec(1.0/60, 5, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trips, stats := Derive([]dataset.TripRecord{tt.rec})
			if got := len(trips) == 1; got != tt.wantIn {
				t.Errorf("included = %v, want %v", got, tt.wantIn)
			}
			if wantDeg := btoi(!tt.wantIn); stats.Degenerate != wantDeg {
				t.Errorf("Degenerate = %d, want %d", stats.Degenerate, wantDeg)
			}
		})
	}
}

func TestDerive_SubMinuteTripIsLargeButFinite(t *testing.T) {
	trips, _ := Derive([]dataset.TripRecord{rec(1.0/60, 5, 1)})
	if len(trips) != 1 {
		t.Fatal("sub-minute trip excluded")
	}
	cpm := trips[0].CostPerMinute
	if math.IsInf(cpm, 0) || math.IsNaN(cpm) {
		t.Fatalf("CostPerMinute = %v, want finite", cpm)
	}
	if math.Abs(cpm-300) > 1e-9 {
		t.Errorf("CostPerMinute = %v, want 300", cpm)
	}
}

func TestDerive_ZeroDistanceYieldsNaNPerMile(t *testing.T) {
	trips, _ := Derive([]dataset.TripRecord{rec(10, 20, 0)})
	if len(trips) != 1 {
		t.Fatal("row excluded")
	}
	if !math.IsNaN(trips[0].CostPerMile) {
		t.Errorf("CostPerMile = %v, want NaN", trips[0].CostPerMile)
	}
	if trips[0].CostPerMinute != 2.0 {
		t.Errorf("CostPerMinute = %v, want 2.0", trips[0].CostPerMinute)
	}
}

func TestDerive_SpecScenario(t *testing.T) {
	// Two rows, same code: a 10-minute $20 trip and a zero-duration $5
	// trip. Exactly the first survives, with cost_per_minute 2.0.
	trips, stats := Derive([]dataset.TripRecord{
		rec(10, 20, 2),
		rec(0, 5, 1),
	})
	if len(trips) != 1 {
		t.Fatalf("got %d trips, want 1", len(trips))
	}
	if trips[0].CostPerMinute != 2.0 {
		t.Errorf("CostPerMinute = %v, want 2.0", trips[0].CostPerMinute)
	}
	if stats.In != 2 || stats.Degenerate != 1 || stats.Out != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
