package pipeline

// RunStats tracks aggregate counters across one batch run.
type RunStats struct {
	Files       int // discovered input files
	FilesRead   int // files read successfully
	FilesFailed int // unreadable files, skipped

	RowsLoaded     int // rows parsed from all files
	RowsMalformed  int // rows excluded while loading (missing fields)
	RowsDegenerate int // rows excluded for non-positive duration
	RowsDropped    int // rows rejected by the validity filter
	RowsAggregated int // rows that reached the aggregator

	Groups int // distinct rate codes in the summary

	RenderFailed bool // chart rendering failed (summary still produced)
	Failed       bool // fatal condition; process should exit non-zero
}

// RowsExcluded returns the total number of rows removed between loading
// and aggregation.
func (s *RunStats) RowsExcluded() int {
	return s.RowsMalformed + s.RowsDegenerate + s.RowsDropped
}
