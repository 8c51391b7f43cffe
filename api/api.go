package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"tradedesk/internal/db/models/postgres/public/model"
	"tradedesk/internal/logger"
	"tradedesk/internal/reconciler"
	"tradedesk/internal/repository"
	"tradedesk/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Db                   *sql.DB
	ApiRequestRepository repository.ApiRequestRepository
	AllocationService    service.AllocationService
	TradeService         service.TradeService
	WatchlistService     service.WatchlistService
	AccountService       service.AccountService
	ChatService          service.ChatService
	// HS256 secret; when empty users are identified by user_id
	JwtDecodeToken string
}

var httpRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tradedesk_http_requests_total",
		Help: "HTTP requests by route and status",
	},
	[]string{"route", "status"},
)

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to tradedesk"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/usageStats", m.usageStats)

	public := router.Group("/api")
	public.POST("/allocations/reconcile", m.reconcile)

	authed := router.Group("/api", m.authMiddleware)
	authed.GET("/watchlist", m.getWatchlist)
	authed.POST("/watchlist", m.addToWatchlist)
	authed.DELETE("/watchlist/:symbol", m.removeFromWatchlist)

	authed.GET("/trades", m.listTrades)
	authed.POST("/trades", m.addTrade)
	authed.PUT("/trades/:id", m.updateTrade)
	authed.DELETE("/trades/:id", m.deleteTrade)
	authed.POST("/trades/complete_and_credit", m.completeAndCredit)
	authed.POST("/trades/allocate", m.allocate)
	authed.POST("/trades/allocate/suggest", m.suggestAllocation)

	authed.GET("/user/balance", m.getBalance)
	authed.PUT("/user/balance", m.updateBalance)
	authed.GET("/user/stats", m.getStats)

	authed.POST("/chat", m.chat)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// errorStatus maps domain errors onto HTTP codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrOracleUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, reconciler.ErrUnparsableResponse), errors.Is(err, reconciler.ErrNoValidSuggestions):
		return http.StatusBadGateway
	case errors.Is(err, reconciler.ErrBalanceExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, reconciler.ErrInvalidInput), errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, errorStatus(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "status", code, "error", err.Error())
	} else {
		log.Infow("request rejected", "status", code, "error", err.Error())
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.New()
	log := zap.S().With("requestID", requestID.String())
	ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context(), log))
	ctx.Header("X-Request-ID", requestID.String())

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Warnw("failed to get raw data", "error", err.Error())
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	start := time.Now().UTC()
	var req *model.APIRequest
	if m.Db != nil && m.ApiRequestRepository != nil {
		req, err = m.ApiRequestRepository.Add(m.Db, model.APIRequest{
			RequestID:   requestID,
			Method:      ctx.Request.Method,
			Route:       ctx.Request.URL.Path,
			RequestBody: strPtr(string(body)),
			StartTs:     start,
		})
		if err != nil {
			log.Warnw("failed to record api request", "error", err.Error())
		}
	}

	ctx.Next()

	status := ctx.Writer.Status()
	httpRequests.WithLabelValues(ctx.FullPath(), strconv.Itoa(status)).Inc()
	log.Infow("handled request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", status,
		"durationMs", time.Since(start).Milliseconds(),
	)

	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(status))
		req.ResponseBody = strPtr(w.body.String())
		if id, ok := userAccountIDFromGin(ctx); ok {
			req.UserAccountID = &id
		}

		err = m.ApiRequestRepository.Update(m.Db, *req)
		if err != nil {
			log.Warnw("failed to update api request", "error", err.Error())
		}
	}
}
