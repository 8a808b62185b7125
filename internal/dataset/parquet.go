package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
)

// parquetTrip mirrors the columns we need from the TLC yellow-taxi schema.
// Column names match the published files exactly (note the mixed-case
// RatecodeID); extra columns in the file are ignored by the reader.
// Nullable columns are read through optional pointers so a null cell
// arrives as nil rather than a zero value we could mistake for data.
type parquetTrip struct {
	Pickup       *time.Time `parquet:"tpep_pickup_datetime,optional"`
	Dropoff      *time.Time `parquet:"tpep_dropoff_datetime,optional"`
	TripDistance float64    `parquet:"trip_distance,optional"`
	TotalAmount  float64    `parquet:"total_amount,optional"`
	RateCode     *float64   `parquet:"RatecodeID,optional"`
}

// ParquetSource reads one .parquet trip-record file.
type ParquetSource struct {
	path string
}

// NewParquetSource returns a source for the file at path. The file is not
// opened until Read.
func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{path: path}
}

// Name implements TableSource; it returns the file basename.
func (s *ParquetSource) Name() string { return filepath.Base(s.path) }

// Read loads the whole file eagerly. Rows with a null rate code or null
// timestamps are excluded and counted as malformed.
func (s *ParquetSource) Read(ctx context.Context) ([]TripRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	raw, err := parquet.ReadFile[parquetTrip](s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", s.path, err)
	}

	records := make([]TripRecord, 0, len(raw))
	malformed := 0
	for _, row := range raw {
		if row.RateCode == nil || row.Pickup == nil || row.Dropoff == nil {
			malformed++
			continue
		}
		records = append(records, TripRecord{
			Pickup:       *row.Pickup,
			Dropoff:      *row.Dropoff,
			TripDistance: row.TripDistance,
			TotalAmount:  row.TotalAmount,
			RateCode:     RateCode(*row.RateCode),
		})
	}
	return records, malformed, nil
}
