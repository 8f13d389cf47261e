package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"wealthtracker/api"
	"wealthtracker/cmd"
	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	l1_service "wealthtracker/internal/service/l1"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func printJson(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseUser(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return id, nil
}

func backfillCmd(handler func() *api.ApiHandler) *cobra.Command {
	var (
		assetID  string
		userID   string
		symbol   string
		price    string
		isUpdate bool
	)

	c := &cobra.Command{
		Use:   "backfill",
		Short: "Populate price history for one asset",
		RunE: func(c *cobra.Command, args []string) error {
			in := l1_service.BackfillInput{IsUpdate: isUpdate}

			id, err := uuid.Parse(assetID)
			if err != nil {
				return fmt.Errorf("invalid asset id %q: %w", assetID, err)
			}
			in.AssetID = id

			if in.UserID, err = parseUser(userID); err != nil {
				return err
			}
			if symbol != "" {
				in.Symbol = &symbol
			}
			if price != "" {
				p, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
				in.ReferencePrice = &p
			}

			result, err := handler().BackfillService.Backfill(c.Context(), in)
			if err != nil {
				return err
			}
			return printJson(result)
		},
	}

	c.Flags().StringVar(&assetID, "asset", "", "asset id")
	c.Flags().StringVar(&userID, "user", "", "owner user id")
	c.Flags().StringVar(&symbol, "symbol", "", "market symbol")
	c.Flags().StringVar(&price, "price", "", "reference price for manual assets")
	c.Flags().BoolVar(&isUpdate, "update", false, "only write today's record")
	c.MarkFlagRequired("asset")
	c.MarkFlagRequired("user")
	c.MarkFlagsMutuallyExclusive("symbol", "price")

	return c
}

func refreshCmd(handler func() *api.ApiHandler) *cobra.Command {
	var userID string

	c := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh current prices for one user, or everyone when --user is omitted",
		RunE: func(c *cobra.Command, args []string) error {
			h := handler()
			if userID == "" {
				result, err := h.ScheduledRefreshHandler.Run(c.Context())
				if err != nil {
					return err
				}
				return printJson(result)
			}

			id, err := parseUser(userID)
			if err != nil {
				return err
			}
			result, err := h.RefreshService.RefreshPrices(c.Context(), domain.Caller{UserID: id})
			if err != nil {
				return err
			}
			return printJson(result)
		},
	}

	c.Flags().StringVar(&userID, "user", "", "user id")

	return c
}

func exportCmd(handler func() *api.ApiHandler) *cobra.Command {
	var (
		userID string
		period string
		out    string
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Write a user's valuation series as csv",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseUser(userID)
			if err != nil {
				return err
			}
			p, err := domain.ParseLookbackPeriod(period)
			if err != nil {
				return err
			}

			report, err := handler().ValuationService.GetPortfolioValuation(c.Context(), id, p)
			if err != nil {
				return err
			}

			w := os.Stdout
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return gocsv.Marshal(api.ValuationCsvRows(report.Series), w)
		},
	}

	c.Flags().StringVar(&userID, "user", "", "user id")
	c.Flags().StringVar(&period, "period", "3m", "lookback: 1w, 1m, 3m, 6m, ytd, 1y or all")
	c.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	c.MarkFlagRequired("user")

	return c
}

func main() {
	log := logger.New()

	var apiHandler *api.ApiHandler
	handler := func() *api.ApiHandler {
		if apiHandler == nil {
			h, err := cmd.InitializeDependencies()
			if err != nil {
				log.Fatal(err)
			}
			apiHandler = h
		}
		return apiHandler
	}

	root := &cobra.Command{
		Use:           "wealthtracker",
		Short:         "Price history maintenance for wealthtracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		backfillCmd(handler),
		refreshCmd(handler),
		exportCmd(handler),
	)

	ctx := logger.WithContext(context.Background(), log)
	err := root.ExecuteContext(ctx)
	cmd.CloseDependencies(apiHandler)
	if err != nil {
		log.Fatal(err)
	}
}
