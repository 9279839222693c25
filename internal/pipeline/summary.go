package pipeline

import "log/slog"

// Summary accumulates the non-fatal conditions observed during one dataset
// build. It is reported once at the end of the run instead of raising each
// condition individually.
type Summary struct {
	Dataset string

	// Decoded counts elements successfully decoded from the source stream.
	Decoded int

	// Accepted counts records that passed the filter.
	Accepted int

	// SkippedDecode counts elements that failed to decode and were skipped.
	SkippedDecode int

	// MissingOracleID counts card records dropped for lacking an oracle id.
	MissingOracleID int

	// MissingJoinKeys counts oracle ids with no printing-side price data.
	MissingJoinKeys int

	// BudgetOverruns names records whose serialized form alone exceeded a
	// file budget and were emitted in a group of their own.
	BudgetOverruns []string
}

// Log emits the end-of-run summary at the appropriate levels: info for
// counters, warn for conditions that indicate upstream data problems.
func (s *Summary) Log(log *slog.Logger) {
	log.Info("dataset summary",
		"dataset", s.Dataset,
		"decoded", s.Decoded,
		"accepted", s.Accepted,
	)
	if s.SkippedDecode > 0 {
		log.Warn("skipped undecodable records", "dataset", s.Dataset, "count", s.SkippedDecode)
	}
	if s.MissingOracleID > 0 {
		log.Warn("dropped records without oracle_id", "dataset", s.Dataset, "count", s.MissingOracleID)
	}
	if s.MissingJoinKeys > 0 {
		log.Warn("oracle ids with no pricing data", "dataset", s.Dataset, "count", s.MissingJoinKeys)
	}
	for _, name := range s.BudgetOverruns {
		log.Warn("record exceeds file budget on its own", "dataset", s.Dataset, "record", name)
	}
}
