package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const historyBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "regularMarketPrice": 212.5, "chartPreviousClose": 210.1},
      "timestamp": [1735828200, 1735914600, 1736173800, 1736260200],
      "indicators": {"quote": [{"close": [243.85, null, 245.0, -1]}]}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestClient_GetChart(t *testing.T) {
	t.Run("history drops nulls and bad prices", func(t *testing.T) {
		var gotPath, gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			require.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Write([]byte(historyBody))
		})

		chart, err := client.GetChart(context.Background(), "AAPL", ChartParams{
			Start: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Equal(t, "/v8/finance/chart/AAPL", gotPath)
		require.Contains(t, gotQuery, "period1=1735776000")
		require.Contains(t, gotQuery, "interval=1d")

		require.Equal(t, "", cmp.Diff([]Bar{
			{Time: time.Unix(1735828200, 0).UTC(), Close: 243.85},
			{Time: time.Unix(1736173800, 0).UTC(), Close: 245.0},
		}, chart.Bars()))
		require.Equal(t, 212.5, *chart.CurrentPrice())
	})

	t.Run("current price falls back to previous close", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Contains(t, r.URL.RawQuery, "range=1d")
			w.Write([]byte(`{"chart": {"result": [{"meta": {"regularMarketPrice": 0, "chartPreviousClose": 99.5}}]}}`))
		})
		chart, err := client.GetChart(context.Background(), "MSFT", ChartParams{Range: "1d"})
		require.NoError(t, err)
		require.Equal(t, 99.5, *chart.CurrentPrice())
		require.Empty(t, chart.Bars())
	})

	t.Run("no usable price", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart": {"result": [{"meta": {"regularMarketPrice": -3}}]}}`))
		})
		chart, err := client.GetChart(context.Background(), "X", ChartParams{Range: "1d"})
		require.NoError(t, err)
		require.Nil(t, chart.CurrentPrice())
	})

	t.Run("unexpected shape is no data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart": {"result": []}}`))
		})
		chart, err := client.GetChart(context.Background(), "X", ChartParams{Range: "1d"})
		require.NoError(t, err)
		require.Nil(t, chart)

		client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>rate limited</html>`))
		})
		chart, err = client.GetChart(context.Background(), "X", ChartParams{Range: "1d"})
		require.NoError(t, err)
		require.Nil(t, chart)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.GetChart(context.Background(), "NOPE", ChartParams{Range: "1d"})
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("server error is retryable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream"))
		})
		_, err := client.GetChart(context.Background(), "X", ChartParams{Range: "1d"})
		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		require.True(t, httpErr.Retryable())
	})

	t.Run("bad request is not retryable", func(t *testing.T) {
		err := &HTTPError{StatusCode: http.StatusBadRequest}
		require.False(t, err.Retryable())
	})
}
