package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSecrets(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := ParseSecrets([]byte(`{"db": {"host": "localhost", "port": "5432"}}`))
		require.NoError(t, err)
		require.Equal(t, DefaultQuoteBaseURL, s.Quotes.BaseURL)
		require.Equal(t, 10*time.Second, s.Quotes.Timeout())
		require.Equal(t, 3, s.Quotes.MaxAttempts)
		require.Equal(t, 500*time.Millisecond, s.Quotes.BaseDelay())
		require.Equal(t, 200*time.Millisecond, s.Quotes.RateLimitDelay())
		require.Equal(t, 500, s.History.BatchSize)
		require.Equal(t, NewDate(2025, 1, 2), s.History.Anchor())
		require.False(t, s.Alpaca.Enabled())
	})

	t.Run("explicit zero rate limit is kept", func(t *testing.T) {
		s, err := ParseSecrets([]byte(`{"quotes": {"rateLimitDelayMs": 0}}`))
		require.NoError(t, err)
		require.Equal(t, time.Duration(0), s.Quotes.RateLimitDelay())
	})

	t.Run("bad anchor", func(t *testing.T) {
		_, err := ParseSecrets([]byte(`{"history": {"ytdAnchor": "January"}}`))
		require.Error(t, err)
	})

	t.Run("report needs ses", func(t *testing.T) {
		_, err := ParseSecrets([]byte(`{"report": {"toEmail": "me@example.com"}}`))
		require.Error(t, err)
	})

	t.Run("jwt issuer", func(t *testing.T) {
		s, err := ParseSecrets([]byte(`{"jwt": "secret", "jwtIssuer": "https://abc.supabase.co/auth/v1"}`))
		require.NoError(t, err)
		require.Equal(t, "secret", s.Jwt)
		require.Equal(t, "https://abc.supabase.co/auth/v1", s.JwtIssuer)
	})

	t.Run("connection string", func(t *testing.T) {
		s, err := ParseSecrets([]byte(`{"db": {"host": "h", "port": "1", "user": "u", "password": "p", "database": "d"}}`))
		require.NoError(t, err)
		require.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", s.Db.ToConnectionStr())
	})
}
