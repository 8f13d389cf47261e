package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
	defaultTimeout   = 10 * time.Second
)

var ErrNotFound = errors.New("symbol not found")

// HTTPError is returned for any non-200 response other than 404.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("yahoo chart api returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth asking again for.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		e.StatusCode >= 500
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithBaseURL(u string) Option {
	return func(cl *Client) {
		if u != "" {
			cl.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChartParams selects the window. When Range is set, Start and End are
// ignored.
type ChartParams struct {
	Range string
	Start time.Time
	End   time.Time
}

type Bar struct {
	Time  time.Time
	Close float64
}

type Chart struct {
	Symbol             string
	RegularMarketPrice *float64
	PreviousClose      *float64
	ChartPreviousClose *float64
	Timestamps         []int64
	Closes             []*float64
}

func validPrice(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0) && *p > 0
}

// CurrentPrice is the regular market price, falling back to the previous
// close. Nil when neither is a usable price.
func (c Chart) CurrentPrice() *float64 {
	for _, p := range []*float64{c.RegularMarketPrice, c.PreviousClose, c.ChartPreviousClose} {
		if validPrice(p) {
			v := *p
			return &v
		}
	}
	return nil
}

// Bars pairs timestamps with closes and drops entries whose close is null
// or not a usable price.
func (c Chart) Bars() []Bar {
	n := len(c.Timestamps)
	if len(c.Closes) < n {
		n = len(c.Closes)
	}
	out := make([]Bar, 0, n)
	for i := 0; i < n; i++ {
		if !validPrice(c.Closes[i]) {
			continue
		}
		out = append(out, Bar{
			Time:  time.Unix(c.Timestamps[i], 0).UTC(),
			Close: *c.Closes[i],
		})
	}
	return out
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

func (c *Client) chartURL(symbol string, params ChartParams) string {
	values := url.Values{}
	values.Set("interval", "1d")
	if params.Range != "" {
		values.Set("range", params.Range)
	} else {
		values.Set("period1", strconv.FormatInt(params.Start.Unix(), 10))
		values.Set("period2", strconv.FormatInt(params.End.Unix(), 10))
	}
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), values.Encode())
}

// GetChart performs a single request. A response that parses but carries
// no result, or does not parse at all, yields (nil, nil).
func (c *Client) GetChart(ctx context.Context, symbol string, params ChartParams) (*Chart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chartURL(symbol, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart body for %s: %w", symbol, err)
	}

	payload := chartResponse{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil
	}
	if len(payload.Chart.Result) == 0 {
		return nil, nil
	}

	result := payload.Chart.Result[0]
	chart := &Chart{
		Symbol:             result.Meta.Symbol,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
		PreviousClose:      result.Meta.PreviousClose,
		ChartPreviousClose: result.Meta.ChartPreviousClose,
		Timestamps:         result.Timestamp,
	}
	if len(result.Indicators.Quote) > 0 {
		chart.Closes = result.Indicators.Quote[0].Close
	}

	return chart, nil
}
