package api

import (
	"fmt"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// ValuationCsvRow is one line of the valuation csv export.
type ValuationCsvRow struct {
	Date       string `csv:"date"`
	TotalValue string `csv:"total_value"`
}

func (m ApiHandler) loadReport(c *gin.Context) (*domain.PortfolioReport, bool) {
	userID, period, ok := valuationParams(c)
	if !ok {
		return nil, false
	}

	report, err := m.ValuationService.GetPortfolioValuation(c.Request.Context(), userID, period)
	if err != nil {
		returnErrorJson(err, c)
		return nil, false
	}
	return report, true
}

func valuationParams(c *gin.Context) (uuid.UUID, domain.LookbackPeriod, bool) {
	caller, err := callerFromContext(c)
	if err != nil {
		returnErrorJson(err, c)
		return uuid.Nil, "", false
	}
	userID, err := targetUser(c, caller)
	if err != nil {
		returnErrorJson(err, c)
		return uuid.Nil, "", false
	}
	period, err := domain.ParseLookbackPeriod(c.Query("period"))
	if err != nil {
		returnErrorJson(err, c)
		return uuid.Nil, "", false
	}
	return userID, period, true
}

func (m ApiHandler) getValuation(c *gin.Context) {
	report, ok := m.loadReport(c)
	if !ok {
		return
	}
	c.JSON(200, report)
}

func ValuationCsvRows(series []domain.PortfolioValuation) []ValuationCsvRow {
	rows := make([]ValuationCsvRow, 0, len(series))
	for _, v := range series {
		rows = append(rows, ValuationCsvRow{
			Date:       util.FormatDate(v.Date),
			TotalValue: v.TotalValue.StringFixed(domain.PriceDecimalPlaces),
		})
	}
	return rows
}

func (m ApiHandler) getValuationCsv(c *gin.Context) {
	report, ok := m.loadReport(c)
	if !ok {
		return
	}

	out, err := gocsv.MarshalBytes(ValuationCsvRows(report.Series))
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to write csv: %w", err), c)
		return
	}

	filename := fmt.Sprintf("valuation_%s_%s.csv", report.Period, util.FormatDate(report.End))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", out)
}
