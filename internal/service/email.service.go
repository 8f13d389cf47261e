package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"wealthtracker/internal/domain"
	"wealthtracker/internal/repository"
	"wealthtracker/internal/util"
)

// EmailService renders and sends operator emails. It does NOT run the
// refresh itself; results are passed in as domain objects.
type EmailService interface {
	// SendRefreshReport emails a summary of a refresh run to `to`. Runs
	// without failures are not reported.
	SendRefreshReport(ctx context.Context, to string, result *domain.RefreshResult) error

	// GenerateRefreshReportEmail returns the subject and HTML body for a
	// refresh run. Exposed separately for previews.
	GenerateRefreshReportEmail(result *domain.RefreshResult) (string, string, error)
}

type emailServiceHandler struct {
	EmailRepository repository.EmailRepository
	Now             func() time.Time
}

func NewEmailService(
	emailRepository repository.EmailRepository,
) EmailService {
	return &emailServiceHandler{
		EmailRepository: emailRepository,
		Now:             time.Now,
	}
}

var refreshReportTemplate = template.Must(template.New("refresh_report").Parse(`<html>
<body style="font-family: sans-serif;">
<h2>Price refresh for {{.Date}}</h2>
<p>{{.Updated}} asset(s) updated, {{.Failed}} failed.</p>
{{if .Failures}}
<table cellpadding="4" style="border-collapse: collapse;">
<tr><th align="left">Asset</th><th align="left">Symbol</th><th align="left">Reason</th></tr>
{{range .Failures}}<tr><td>{{.AssetID}}</td><td>{{.Symbol}}</td><td>{{.Reason}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>`))

type refreshReportRow struct {
	AssetID string
	Symbol  string
	Reason  string
}

type refreshReportData struct {
	Date     string
	Updated  int
	Failed   int
	Failures []refreshReportRow
}

func (h *emailServiceHandler) GenerateRefreshReportEmail(result *domain.RefreshResult) (string, string, error) {
	if result == nil {
		return "", "", fmt.Errorf("refresh result is required")
	}

	data := refreshReportData{
		Date:     util.TodayString(h.Now()),
		Updated:  result.Updated,
		Failed:   result.Failed,
		Failures: make([]refreshReportRow, 0, len(result.Details.Failures)),
	}
	for _, f := range result.Details.Failures {
		symbol := "manual"
		if f.Symbol != nil {
			symbol = *f.Symbol
		}
		data.Failures = append(data.Failures, refreshReportRow{
			AssetID: f.AssetID.String(),
			Symbol:  symbol,
			Reason:  f.Reason,
		})
	}

	var body bytes.Buffer
	if err := refreshReportTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render refresh report: %w", err)
	}

	subject := fmt.Sprintf("Price refresh %s: %d updated, %d failed", data.Date, data.Updated, data.Failed)
	return subject, body.String(), nil
}

func (h *emailServiceHandler) SendRefreshReport(ctx context.Context, to string, result *domain.RefreshResult) error {
	if result == nil || result.Failed == 0 {
		return nil
	}
	if to == "" {
		return fmt.Errorf("report recipient is required")
	}

	subject, body, err := h.GenerateRefreshReportEmail(result)
	if err != nil {
		return err
	}

	if err := h.EmailRepository.SendEmail(ctx, to, subject, body); err != nil {
		return fmt.Errorf("failed to send refresh report: %w", err)
	}
	return nil
}
