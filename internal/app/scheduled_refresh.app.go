package app

import (
	"context"
	"fmt"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/service"
	l2_service "wealthtracker/internal/service/l2"
)

// ScheduledRefreshHandler runs the daily refresh for every user and mails
// a report to ReportEmail when some assets failed. EmailService may be nil
// when SES is not configured.
type ScheduledRefreshHandler struct {
	RefreshService l2_service.RefreshService
	EmailService   service.EmailService
	ReportEmail    string
}

func (h ScheduledRefreshHandler) Run(ctx context.Context) (*domain.RefreshResult, error) {
	log := logger.FromContext(ctx)

	result, err := h.RefreshService.RefreshPrices(ctx, domain.ElevatedCaller())
	if err != nil {
		return nil, fmt.Errorf("failed to refresh prices: %w", err)
	}
	log.Infow("scheduled refresh complete", "updated", result.Updated, "failed", result.Failed)

	if result.Failed == 0 || h.EmailService == nil || h.ReportEmail == "" {
		return result, nil
	}

	// the refresh already committed, a report failure should not fail the run
	if err := h.EmailService.SendRefreshReport(ctx, h.ReportEmail, result); err != nil {
		log.Errorw("failed to send refresh report", "error", err)
	}

	return result, nil
}
