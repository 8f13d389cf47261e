package app

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"wealthtracker/internal/db/models/postgres/public/model"
	"wealthtracker/internal/domain"
	"wealthtracker/internal/repository"
	l2_service "wealthtracker/internal/service/l2"
	"wealthtracker/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PortfolioPromptApp turns a user's holdings and valuation history into a
// plain-text prompt they can paste into an AI chat assistant.
type PortfolioPromptApp interface {
	GeneratePrompt(ctx context.Context, userID uuid.UUID, period domain.LookbackPeriod) (string, error)
}

type portfolioPromptAppHandler struct {
	ValuationService l2_service.ValuationService
	AssetRepository  repository.AssetRepository
}

func NewPortfolioPromptApp(
	valuationService l2_service.ValuationService,
	assetRepository repository.AssetRepository,
) PortfolioPromptApp {
	return &portfolioPromptAppHandler{
		ValuationService: valuationService,
		AssetRepository:  assetRepository,
	}
}

const maxPromptHoldings = 25

var promptTemplate = template.Must(template.New("portfolio_prompt").Parse(`I would like an analysis of my investment portfolio.

Portfolio value: {{.Total}} as of {{.End}}.
{{- if .Performance}}
Over the last {{.Period}} ({{.Start}} to {{.End}}) it went from {{.Performance.Start}} to {{.Performance.End}} ({{.Performance.Change}}, {{.Performance.Percent}}%), trend {{.Performance.Trend}}.
Range: low {{.Performance.Low}}, high {{.Performance.High}}.
{{- if .Performance.Volatility}} Annualized volatility: {{.Performance.Volatility}}%.{{end}}
{{- else}}
There is no price history for this period yet.
{{- end}}

Allocation by category:
{{range .ByCategory}}- {{.Key}}: {{.Value}} ({{.Weight}}%)
{{end}}
{{- if .ByRegion}}
Allocation by region:
{{range .ByRegion}}- {{.Key}}: {{.Value}} ({{.Weight}}%)
{{end}}{{end}}
{{- if .BySector}}
Allocation by sector:
{{range .BySector}}- {{.Key}}: {{.Value}} ({{.Weight}}%)
{{end}}{{end}}
Holdings:
{{range .Holdings}}- {{.Name}}{{if .Symbol}} ({{.Symbol}}){{end}}, {{.Category}}: {{.Quantity}} units at {{.Price}} = {{.Value}}{{if .Gain}}, gain {{.Gain}}%{{end}}{{if .Apy}}, APY {{.Apy}}%{{end}}
{{end}}
{{- if .Truncated}}- ...and {{.Truncated}} smaller holding(s)
{{end}}
Please comment on diversification, concentration risk and how recent performance compares with a broad market index. Suggest concrete rebalancing ideas if relevant.
`))

type promptPerformance struct {
	Start      string
	End        string
	Change     string
	Percent    string
	Trend      domain.Trend
	High       string
	Low        string
	Volatility string
}

type promptSlice struct {
	Key    string
	Value  string
	Weight string
}

type promptHolding struct {
	Name     string
	Symbol   string
	Category string
	Quantity string
	Price    string
	Value    string
	Gain     string
	Apy      string
}

type promptData struct {
	Period      domain.LookbackPeriod
	Start       string
	End         string
	Total       string
	Performance *promptPerformance
	ByCategory  []promptSlice
	ByRegion    []promptSlice
	BySector    []promptSlice
	Holdings    []promptHolding
	Truncated   int
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.PriceDecimalPlaces)
}

func percent(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}

// toPromptSlices drops the Unknown bucket when it is the only one; it
// says nothing about the portfolio.
func toPromptSlices(in []domain.AllocationSlice) []promptSlice {
	if len(in) == 1 && in[0].Key == "Unknown" {
		return nil
	}
	out := make([]promptSlice, 0, len(in))
	for _, s := range in {
		out = append(out, promptSlice{
			Key:    s.Key,
			Value:  money(s.Value),
			Weight: percent(s.Weight * 100),
		})
	}
	return out
}

func toPromptHoldings(assets []model.Asset) ([]promptHolding, int) {
	sorted := make([]model.Asset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity.Mul(sorted[i].CurrentPrice).GreaterThan(sorted[j].Quantity.Mul(sorted[j].CurrentPrice))
	})

	truncated := 0
	if len(sorted) > maxPromptHoldings {
		truncated = len(sorted) - maxPromptHoldings
		sorted = sorted[:maxPromptHoldings]
	}

	out := make([]promptHolding, 0, len(sorted))
	for _, a := range sorted {
		h := promptHolding{
			Name:     a.Name,
			Category: a.Category,
			Quantity: a.Quantity.String(),
			Price:    money(a.CurrentPrice),
			Value:    money(a.Quantity.Mul(a.CurrentPrice)),
		}
		if a.Symbol != nil {
			h.Symbol = strings.ToUpper(*a.Symbol)
		}
		if a.PurchasePrice.IsPositive() {
			gain := a.CurrentPrice.Sub(a.PurchasePrice).Div(a.PurchasePrice).Mul(decimal.NewFromInt(100))
			h.Gain = gain.StringFixed(2)
		}
		if a.Apy != nil {
			h.Apy = a.Apy.String()
		}
		out = append(out, h)
	}
	return out, truncated
}

func buildPromptData(report *domain.PortfolioReport, assets []model.Asset) promptData {
	data := promptData{
		Period:     report.Period,
		Start:      util.FormatDate(report.Start),
		End:        util.FormatDate(report.End),
		Total:      money(report.Allocation.Total),
		ByCategory: toPromptSlices(report.Allocation.ByCategory),
		ByRegion:   toPromptSlices(report.Allocation.ByRegion),
		BySector:   toPromptSlices(report.Allocation.BySector),
	}
	data.Holdings, data.Truncated = toPromptHoldings(assets)

	if p := report.Performance; p != nil {
		data.Performance = &promptPerformance{
			Start:   money(p.StartValue),
			End:     money(p.EndValue),
			Change:  money(p.AbsoluteChange),
			Percent: percent(p.PercentChange),
			Trend:   p.Trend,
			High:    money(p.High),
			Low:     money(p.Low),
		}
		if p.Volatility != nil {
			data.Performance.Volatility = percent(*p.Volatility)
		}
	}
	return data
}

func (h *portfolioPromptAppHandler) GeneratePrompt(ctx context.Context, userID uuid.UUID, period domain.LookbackPeriod) (string, error) {
	report, err := h.ValuationService.GetPortfolioValuation(ctx, userID, period)
	if err != nil {
		return "", fmt.Errorf("failed to get portfolio valuation: %w", err)
	}

	assets, err := h.AssetRepository.List(ctx, repository.AssetListFilter{UserID: &userID})
	if err != nil {
		return "", fmt.Errorf("failed to list assets: %w", err)
	}

	return RenderPrompt(report, assets)
}

func RenderPrompt(report *domain.PortfolioReport, assets []model.Asset) (string, error) {
	var out bytes.Buffer
	if err := promptTemplate.Execute(&out, buildPromptData(report, assets)); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return out.String(), nil
}
