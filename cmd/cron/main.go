package main

import (
	"context"
	"fmt"

	"wealthtracker/cmd"
	"wealthtracker/internal/app"
	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
)

type cronHandler struct {
	refresh app.ScheduledRefreshHandler
}

// Handler runs on the EventBridge schedule.
func (m cronHandler) Handler(ctx context.Context, event events.CloudWatchEvent) (*domain.RefreshResult, error) {
	log := logger.New().With("runID", uuid.NewString(), "eventID", event.ID)
	ctx = logger.WithContext(ctx, log)

	log.Infow("starting scheduled refresh", "source", event.Source, "time", event.Time)
	result, err := m.refresh.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduled refresh failed: %w", err)
	}
	return result, nil
}

func main() {
	log := logger.New()
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	handler := cronHandler{refresh: apiHandler.ScheduledRefreshHandler}
	lambda.Start(handler.Handler)
}
