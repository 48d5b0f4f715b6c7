package interfaces

import "time"

// EodSummarizer generates end-of-day summaries of the quote log.
type EodSummarizer interface {
	// SummarizeDay aggregates one day's quote log into a per-program CSV
	// report. Returns the path of the generated file, or "" when the day
	// has no quote activity.
	SummarizeDay(t time.Time) (csvPath string, err error)

	// SummarizeToday summarizes the current day (BRT).
	SummarizeToday() (csvPath string, err error)

	// ShouldRunNow reports whether yesterday's summary is still missing
	// and ought to be generated, along with the path it would be written
	// to.
	ShouldRunNow() (shouldRun bool, csvPath string)
}
