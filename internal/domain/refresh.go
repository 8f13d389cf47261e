package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caller identifies who triggered an operation. Elevated callers (the
// scheduler or the service role) act on every user's assets.
type Caller struct {
	UserID   uuid.UUID
	Elevated bool
}

func ElevatedCaller() Caller {
	return Caller{Elevated: true}
}

type RefreshSuccess struct {
	AssetID uuid.UUID       `json:"assetID"`
	Symbol  *string         `json:"symbol"`
	Price   decimal.Decimal `json:"price"`
}

type RefreshFailure struct {
	AssetID uuid.UUID `json:"assetID"`
	Symbol  *string   `json:"symbol"`
	Reason  string    `json:"reason"`
}

type RefreshDetails struct {
	Successes []RefreshSuccess `json:"successes"`
	Failures  []RefreshFailure `json:"failures"`
}

type RefreshResult struct {
	Updated int            `json:"updated"`
	Failed  int            `json:"failed"`
	Details RefreshDetails `json:"details"`
}

func NewRefreshResult() *RefreshResult {
	return &RefreshResult{
		Details: RefreshDetails{
			Successes: []RefreshSuccess{},
			Failures:  []RefreshFailure{},
		},
	}
}

func (r *RefreshResult) AddSuccess(s RefreshSuccess) {
	r.Updated++
	r.Details.Successes = append(r.Details.Successes, s)
}

func (r *RefreshResult) AddFailure(f RefreshFailure) {
	r.Failed++
	r.Details.Failures = append(r.Details.Failures, f)
}
