package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wealthtracker/internal/app"
	"wealthtracker/internal/domain"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/repository"
	l1_service "wealthtracker/internal/service/l1"
	l2_service "wealthtracker/internal/service/l2"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Db                 *sql.DB
	BackfillService    l1_service.BackfillService
	RefreshService     l2_service.RefreshService
	ValuationService   l2_service.ValuationService
	PortfolioPromptApp app.PortfolioPromptApp
	AssetRepository    repository.AssetRepository
	JwtDecodeToken     string

	// issuer whose JWKS verifies ES256 tokens; empty accepts HS256 only
	JwtIssuer string

	// not routed; used by the scheduled lambda and the CLI
	ScheduledRefreshHandler app.ScheduledRefreshHandler
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to wealthtracker"})
	})

	authed := router.Group("/", m.authMiddleware)
	authed.POST("/backfill", m.backfill)
	authed.POST("/refresh", m.refresh)
	authed.POST("/quotes", m.liveQuotes)
	authed.GET("/portfolio/valuation", m.getValuation)
	authed.GET("/portfolio/valuation.csv", m.getValuationCsv)
	authed.GET("/portfolio/prompt", m.getPrompt)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

var errUnauthorized = errors.New("unauthorized")

func errorStatusCode(err error) int {
	switch {
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound
	case domain.IsExternalSourceError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, errorStatusCode(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c)
	if code >= 500 {
		log.Errorw("request failed", "status", code, "error", err)
	} else {
		log.Infow("request rejected", "status", code, "error", err)
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	log := zap.S().With("requestID", requestID.String())

	c.Set(logger.ContextKey, log)
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))
	c.Header("X-Request-ID", requestID.String())

	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	log.Infow(
		"handled request",
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"latencyMs", time.Since(start).Milliseconds(),
	)
}
