package domain

const (
	SourceMarketHistory  = "market history"
	SourceMarketNoData   = "market history, no data available"
	SourceManualBackfill = "manual reference price"
	SourceManualUpdate   = "manual reference price, today only"
)

// BackfillResult reports one backfill. Inserted + Failed + Skipped always
// equals TotalPoints; Skipped points had a price that rounds to zero or
// repeated a date already in the series.
type BackfillResult struct {
	Success     bool   `json:"success"`
	Inserted    int    `json:"inserted"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
	TotalPoints int    `json:"totalPoints"`
	Source      string `json:"source"`
}

func NewBackfillResult(totalPoints int, res UpsertResult, source string) *BackfillResult {
	return &BackfillResult{
		Success:     res.Failed == 0,
		Inserted:    res.Inserted,
		Failed:      res.Failed,
		Skipped:     res.Skipped,
		TotalPoints: totalPoints,
		Source:      source,
	}
}
