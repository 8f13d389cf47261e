package api

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	mock_app "wealthtracker/internal/app/mocks"
	"wealthtracker/internal/db/models/postgres/public/model"
	"wealthtracker/internal/domain"
	mock_repository "wealthtracker/internal/repository/mocks"
	l1_service "wealthtracker/internal/service/l1"
	mock_l1_service "wealthtracker/internal/service/l1/mocks"
	mock_l2_service "wealthtracker/internal/service/l2/mocks"
	"wealthtracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-jwt-secret"

type testApi struct {
	handler          ApiHandler
	engine           *gin.Engine
	backfillService  *mock_l1_service.MockBackfillService
	refreshService   *mock_l2_service.MockRefreshService
	valuationService *mock_l2_service.MockValuationService
	promptApp        *mock_app.MockPortfolioPromptApp
	assetRepository  *mock_repository.MockAssetRepository
}

func newTestApi(t *testing.T) testApi {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	a := testApi{
		backfillService:  mock_l1_service.NewMockBackfillService(ctrl),
		refreshService:   mock_l2_service.NewMockRefreshService(ctrl),
		valuationService: mock_l2_service.NewMockValuationService(ctrl),
		promptApp:        mock_app.NewMockPortfolioPromptApp(ctrl),
		assetRepository:  mock_repository.NewMockAssetRepository(ctrl),
	}
	a.handler = ApiHandler{
		BackfillService:    a.backfillService,
		RefreshService:     a.refreshService,
		ValuationService:   a.valuationService,
		PortfolioPromptApp: a.promptApp,
		AssetRepository:    a.assetRepository,
		JwtDecodeToken:     testSecret,
	}
	a.engine = a.handler.InitializeRouterEngine()
	return a
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, userID uuid.UUID) string {
	return signToken(t, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "authenticated",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

func serviceToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"role": serviceRole,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

func (a testApi) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	a := newTestApi(t)
	w := a.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, 200, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth(t *testing.T) {
	a := newTestApi(t)

	t.Run("missing token", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/refresh", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": uuid.NewString(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other"))
		require.NoError(t, err)

		w := a.do(t, http.MethodPost, "/refresh", token, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": uuid.NewString(),
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		w := a.do(t, http.MethodPost, "/refresh", token, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no expiry", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": uuid.NewString()})
		w := a.do(t, http.MethodPost, "/refresh", token, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user token without subject", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"role": "authenticated",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		w := a.do(t, http.MethodPost, "/refresh", token, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type jwksServer struct {
	*httptest.Server
	key     *ecdsa.PrivateKey
	fetches *int32
}

func newJwksServer(t *testing.T, kid string) jwksServer {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		if r.URL.Path != "/.well-known/jwks.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(jwksResponse{Keys: []jwkKey{{
			Kty: "EC",
			Crv: "P-256",
			Use: "sig",
			Alg: "ES256",
			Kid: kid,
			X:   base64.RawURLEncoding.EncodeToString(key.X.Bytes()),
			Y:   base64.RawURLEncoding.EncodeToString(key.Y.Bytes()),
		}}})
	}))
	t.Cleanup(srv.Close)

	return jwksServer{Server: srv, key: key, fetches: &fetches}
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestES256Tokens(t *testing.T) {
	trusted := newJwksServer(t, "trusted-kid")
	foreign := newJwksServer(t, "foreign-kid")

	a := newTestApi(t)
	a.handler.JwtIssuer = trusted.URL
	a.engine = a.handler.InitializeRouterEngine()

	t.Run("token from a foreign issuer is rejected without fetching its keys", func(t *testing.T) {
		token := signES256(t, foreign.key, "foreign-kid", jwt.MapClaims{
			"iss":  foreign.URL,
			"role": serviceRole,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		w := a.do(t, http.MethodPost, "/refresh", token, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, int32(0), atomic.LoadInt32(foreign.fetches))
	})

	t.Run("trusted issuer signed with another key", func(t *testing.T) {
		token := signES256(t, foreign.key, "trusted-kid", jwt.MapClaims{
			"iss":  trusted.URL,
			"role": serviceRole,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		w := a.do(t, http.MethodPost, "/refresh", token, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("trusted issuer", func(t *testing.T) {
		userID := uuid.New()
		token := signES256(t, trusted.key, "trusted-kid", jwt.MapClaims{
			"iss":  trusted.URL + "/",
			"sub":  userID.String(),
			"role": "authenticated",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		claims, err := parseSupabaseJWT(token, testSecret, trusted.URL, time.Now())
		require.NoError(t, err)
		require.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("no issuer configured", func(t *testing.T) {
		token := signES256(t, trusted.key, "trusted-kid", jwt.MapClaims{
			"iss": trusted.URL,
			"sub": uuid.NewString(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := parseSupabaseJWT(token, testSecret, "", time.Now())
		require.Error(t, err)
	})
}

func TestCallerFromClaims(t *testing.T) {
	userID := uuid.New()

	caller, err := callerFromClaims(&SupabaseJWT{Subject: userID.String(), Role: "authenticated"})
	require.NoError(t, err)
	require.Equal(t, domain.Caller{UserID: userID}, caller)

	caller, err = callerFromClaims(&SupabaseJWT{Role: serviceRole})
	require.NoError(t, err)
	require.True(t, caller.Elevated)

	_, err = callerFromClaims(&SupabaseJWT{Subject: "nope"})
	require.Error(t, err)
}

func TestErrorStatusCode(t *testing.T) {
	require.Equal(t, 400, errorStatusCode(domain.NewValidationError("x", "bad")))
	require.Equal(t, 404, errorStatusCode(domain.ErrAssetNotFound))
	require.Equal(t, 502, errorStatusCode(&domain.ExternalSourceError{Source: "yahoo", Symbol: "AAPL", Attempts: 3, Err: errors.New("503")}))
	require.Equal(t, 401, errorStatusCode(errUnauthorized))
	require.Equal(t, 500, errorStatusCode(errors.New("boom")))
}

func TestRefresh(t *testing.T) {
	a := newTestApi(t)
	userID := uuid.New()

	t.Run("user scope", func(t *testing.T) {
		result := domain.NewRefreshResult()
		result.AddSuccess(domain.RefreshSuccess{AssetID: uuid.New(), Price: decimal.NewFromInt(10)})
		a.refreshService.EXPECT().RefreshPrices(gomock.Any(), domain.Caller{UserID: userID}).Return(result, nil)

		w := a.do(t, http.MethodPost, "/refresh", userToken(t, userID), nil)
		require.Equal(t, 200, w.Code)

		var out domain.RefreshResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, 1, out.Updated)
		require.Len(t, out.Details.Successes, 1)
		require.NotNil(t, out.Details.Failures)
	})

	t.Run("service role is elevated", func(t *testing.T) {
		a.refreshService.EXPECT().RefreshPrices(gomock.Any(), domain.ElevatedCaller()).Return(domain.NewRefreshResult(), nil)

		w := a.do(t, http.MethodPost, "/refresh", serviceToken(t), nil)
		require.Equal(t, 200, w.Code)
	})

	t.Run("listing failure", func(t *testing.T) {
		a.refreshService.EXPECT().RefreshPrices(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		w := a.do(t, http.MethodPost, "/refresh", userToken(t, userID), nil)
		require.Equal(t, 500, w.Code)
	})
}

func TestBackfill(t *testing.T) {
	userID := uuid.New()
	asset := &model.Asset{
		AssetID:      uuid.New(),
		UserID:       userID,
		Symbol:       util.StringPtr("AAPL"),
		CurrentPrice: decimal.NewFromInt(200),
	}

	t.Run("explicit reference price", func(t *testing.T) {
		a := newTestApi(t)
		price := decimal.NewFromInt(500)
		a.assetRepository.EXPECT().Get(gomock.Any(), asset.AssetID).Return(asset, nil)
		a.backfillService.EXPECT().
			Backfill(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in l1_service.BackfillInput) (*domain.BackfillResult, error) {
				require.Equal(t, userID, in.UserID)
				require.Nil(t, in.Symbol)
				require.True(t, price.Equal(*in.ReferencePrice))
				require.True(t, in.IsUpdate)
				return &domain.BackfillResult{Success: true, Inserted: 1, TotalPoints: 1, Source: domain.SourceManualUpdate}, nil
			})

		w := a.do(t, http.MethodPost, "/backfill", userToken(t, userID), map[string]any{
			"assetID":        asset.AssetID,
			"referencePrice": 500,
			"isUpdate":       true,
		})
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"inserted":1`)
	})

	t.Run("defaults to the stored symbol", func(t *testing.T) {
		a := newTestApi(t)
		a.assetRepository.EXPECT().Get(gomock.Any(), asset.AssetID).Return(asset, nil)
		a.backfillService.EXPECT().
			Backfill(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in l1_service.BackfillInput) (*domain.BackfillResult, error) {
				require.Equal(t, "AAPL", *in.Symbol)
				require.Nil(t, in.ReferencePrice)
				return &domain.BackfillResult{Success: true}, nil
			})

		w := a.do(t, http.MethodPost, "/backfill", userToken(t, userID), map[string]any{"assetID": asset.AssetID})
		require.Equal(t, 200, w.Code)
	})

	t.Run("other user's asset", func(t *testing.T) {
		a := newTestApi(t)
		a.assetRepository.EXPECT().Get(gomock.Any(), asset.AssetID).Return(asset, nil)

		w := a.do(t, http.MethodPost, "/backfill", userToken(t, uuid.New()), map[string]any{"assetID": asset.AssetID})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing asset id", func(t *testing.T) {
		a := newTestApi(t)
		w := a.do(t, http.MethodPost, "/backfill", userToken(t, userID), map[string]any{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		a := newTestApi(t)
		a.assetRepository.EXPECT().Get(gomock.Any(), asset.AssetID).Return(asset, nil)
		a.backfillService.EXPECT().Backfill(gomock.Any(), gomock.Any()).Return(nil, domain.NewValidationError("referencePrice", "must be positive"))

		w := a.do(t, http.MethodPost, "/backfill", userToken(t, userID), map[string]any{"assetID": asset.AssetID, "referencePrice": -1})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("external source error", func(t *testing.T) {
		a := newTestApi(t)
		a.assetRepository.EXPECT().Get(gomock.Any(), asset.AssetID).Return(asset, nil)
		a.backfillService.EXPECT().Backfill(gomock.Any(), gomock.Any()).Return(nil, &domain.ExternalSourceError{Source: "yahoo", Symbol: "AAPL", Attempts: 3, Err: errors.New("timeout")})

		w := a.do(t, http.MethodPost, "/backfill", userToken(t, userID), map[string]any{"assetID": asset.AssetID})
		require.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestLiveQuotes(t *testing.T) {
	a := newTestApi(t)
	userID := uuid.New()
	price := decimal.RequireFromString("212.35")

	a.refreshService.EXPECT().
		GetLiveQuotes(gomock.Any(), []string{"AAPL", "NOPE"}).
		Return(map[string]*decimal.Decimal{"AAPL": &price, "NOPE": nil})

	w := a.do(t, http.MethodPost, "/quotes", userToken(t, userID), map[string]any{"symbols": []string{"AAPL", "NOPE"}})
	require.Equal(t, 200, w.Code)
	require.JSONEq(t, `{"quotes":{"AAPL":"212.35","NOPE":null}}`, w.Body.String())

	w = a.do(t, http.MethodPost, "/quotes", userToken(t, userID), map[string]any{"symbols": []string{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValuation(t *testing.T) {
	userID := uuid.New()
	report := &domain.PortfolioReport{
		UserID: userID,
		Period: domain.LookbackOneWeek,
		Start:  util.NewDate(2025, 1, 1),
		End:    util.NewDate(2025, 1, 2),
		Series: []domain.PortfolioValuation{
			{Date: util.NewDate(2025, 1, 1), TotalValue: decimal.NewFromInt(1000)},
			{Date: util.NewDate(2025, 1, 2), TotalValue: decimal.RequireFromString("1020.5")},
		},
	}

	t.Run("json", func(t *testing.T) {
		a := newTestApi(t)
		a.valuationService.EXPECT().GetPortfolioValuation(gomock.Any(), userID, domain.LookbackOneWeek).Return(report, nil)

		w := a.do(t, http.MethodGet, "/portfolio/valuation?period=1w", userToken(t, userID), nil)
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"series"`)
	})

	t.Run("csv", func(t *testing.T) {
		a := newTestApi(t)
		a.valuationService.EXPECT().GetPortfolioValuation(gomock.Any(), userID, domain.LookbackOneWeek).Return(report, nil)

		w := a.do(t, http.MethodGet, "/portfolio/valuation.csv?period=1w", userToken(t, userID), nil)
		require.Equal(t, 200, w.Code)
		require.Equal(t, "date,total_value\n2025-01-01,1000.00\n2025-01-02,1020.50\n", w.Body.String())
		require.Contains(t, w.Header().Get("Content-Disposition"), "valuation_1w_2025-01-02.csv")
	})

	t.Run("bad period", func(t *testing.T) {
		a := newTestApi(t)
		w := a.do(t, http.MethodGet, "/portfolio/valuation?period=10y", userToken(t, userID), nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("elevated caller picks the user", func(t *testing.T) {
		a := newTestApi(t)
		a.valuationService.EXPECT().GetPortfolioValuation(gomock.Any(), userID, domain.LookbackThreeMonths).Return(report, nil)

		w := a.do(t, http.MethodGet, "/portfolio/valuation?userID="+userID.String(), serviceToken(t), nil)
		require.Equal(t, 200, w.Code)
	})

	t.Run("elevated caller without user", func(t *testing.T) {
		a := newTestApi(t)
		w := a.do(t, http.MethodGet, "/portfolio/valuation", serviceToken(t), nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPrompt(t *testing.T) {
	a := newTestApi(t)
	userID := uuid.New()
	a.promptApp.EXPECT().GeneratePrompt(gomock.Any(), userID, domain.LookbackYTD).Return("analyse this", nil)

	w := a.do(t, http.MethodGet, "/portfolio/prompt?period=ytd", userToken(t, userID), nil)
	require.Equal(t, 200, w.Code)
	require.JSONEq(t, `{"prompt":"analyse this"}`, w.Body.String())
}
