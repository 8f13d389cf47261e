package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoricalDataPoint is a single daily observation. Date is always a
// calendar date at 00:00 UTC.
type HistoricalDataPoint struct {
	Date  time.Time
	Price decimal.Decimal
}

// HistoryPoint is one persisted day of an asset's price history.
type HistoryPoint struct {
	AssetID uuid.UUID
	UserID  uuid.UUID
	Price   decimal.Decimal
	Date    time.Time
}

// UpsertResult counts the records handed to a batched upsert. A batch
// that fails is counted whole in Failed. Skipped records were never sent:
// their price rounds to zero, or a later record for the same asset and
// date replaced them.
type UpsertResult struct {
	Inserted int
	Failed   int
	Skipped  int
}

func (u UpsertResult) Add(o UpsertResult) UpsertResult {
	return UpsertResult{
		Inserted: u.Inserted + o.Inserted,
		Failed:   u.Failed + o.Failed,
		Skipped:  u.Skipped + o.Skipped,
	}
}

// PriceDecimalPlaces is the precision prices are stored with.
const PriceDecimalPlaces = 2

func RoundPrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(PriceDecimalPlaces)
}

func NewHistoryPoints(assetID, userID uuid.UUID, series []HistoricalDataPoint) []HistoryPoint {
	out := make([]HistoryPoint, 0, len(series))
	for _, p := range series {
		out = append(out, HistoryPoint{
			AssetID: assetID,
			UserID:  userID,
			Price:   RoundPrice(p.Price),
			Date:    p.Date,
		})
	}
	return out
}
