package domain

// RunStats aggregates counters for one invocation.
type RunStats struct {
	TotalRecords     int
	UnparseableCount int
	RepairedCount    int
	UnparseablePaths int
	RepairedPaths    int
	InvalidWhenCount int
	MissingWhenCount int
	UnsortedCount    int
	StrayLines       int
}

// Add returns the field-wise sum of s and other.
func (s RunStats) Add(other RunStats) RunStats {
	return RunStats{
		TotalRecords:     s.TotalRecords + other.TotalRecords,
		UnparseableCount: s.UnparseableCount + other.UnparseableCount,
		RepairedCount:    s.RepairedCount + other.RepairedCount,
		UnparseablePaths: s.UnparseablePaths + other.UnparseablePaths,
		RepairedPaths:    s.RepairedPaths + other.RepairedPaths,
		InvalidWhenCount: s.InvalidWhenCount + other.InvalidWhenCount,
		MissingWhenCount: s.MissingWhenCount + other.MissingWhenCount,
		UnsortedCount:    s.UnsortedCount + other.UnsortedCount,
		StrayLines:       s.StrayLines + other.StrayLines,
	}
}

// Clean reports whether no anomaly of any kind was found.
func (s RunStats) Clean() bool {
	return s.UnparseableCount == 0 &&
		s.UnparseablePaths == 0 &&
		s.InvalidWhenCount == 0 &&
		s.UnsortedCount == 0 &&
		s.StrayLines == 0
}
