package dataset

import "context"

// TableSource reads one columnar trip-record table into memory.
//
// Read returns the parsed records together with the number of malformed
// rows it excluded (missing rate code, zero or unparsable timestamps).
// Malformed rows are a data-quality issue, not an error; err is reserved
// for the file itself being unreadable.
type TableSource interface {
	Name() string
	Read(ctx context.Context) (records []TripRecord, malformed int, err error)
}

// SliceSource is an in-memory TableSource, used to inject synthetic
// datasets in tests.
type SliceSource struct {
	SourceName string
	Records    []TripRecord
	Malformed  int
	Err        error
}

// Name implements TableSource.
func (s *SliceSource) Name() string { return s.SourceName }

// Read implements TableSource.
func (s *SliceSource) Read(ctx context.Context) ([]TripRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if s.Err != nil {
		return nil, 0, s.Err
	}
	return s.Records, s.Malformed, nil
}
