package api

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	models "PricePulse/internal/domain/models"
	domrepo "PricePulse/internal/domain/repository"
	domsvc "PricePulse/internal/domain/service"
	svccache "PricePulse/internal/service/cache"
	svcmetrics "PricePulse/internal/service/metrics"
	"PricePulse/internal/service/ratelimit"
	"PricePulse/internal/usecase"
	xhttp "PricePulse/pkg/http"
	xlogger "PricePulse/pkg/logger"
	"PricePulse/pkg/util"
)

const (
	listingCacheTTL = 5 * time.Second

	optimizeBurst     = 20
	optimizeRefillSec = 10
)

// PricingEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type PricingEchoHandler struct {
	logger     *xlogger.Logger
	optimizer  *usecase.Optimizer
	churn      *usecase.ChurnAssessor
	classifier *usecase.CustomerClassifier
	store      domrepo.HistoryStore
	encoder    domsvc.CategoryEncoder
	limiter    *ratelimit.Limiter
	cache      svccache.BytesCache
}

func NewPricingEchoHandler(
	logger *xlogger.Logger,
	optimizer *usecase.Optimizer,
	churn *usecase.ChurnAssessor,
	classifier *usecase.CustomerClassifier,
	store domrepo.HistoryStore,
	encoder domsvc.CategoryEncoder,
) *PricingEchoHandler {
	return &PricingEchoHandler{
		logger:     logger,
		optimizer:  optimizer,
		churn:      churn,
		classifier: classifier,
		store:      store,
		encoder:    encoder,
		limiter:    ratelimit.New(),
		cache:      svccache.NewTTLCache(),
	}
}

func (h *PricingEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/pricing/optimize", h.Optimize)
	g.GET("/pricing/history", h.PricingHistory)
	g.POST("/churn/predict", h.ChurnPredict)
	g.GET("/churn/history", h.ChurnHistory)
	g.POST("/customers/classify", h.Classify)
	g.GET("/customers/history", h.CustomerHistory)
	e.GET("/health", h.Health)
}

func (h *PricingEchoHandler) Optimize(c echo.Context) error {
	start := time.Now()
	if !h.limiter.Allow(c.RealIP(), optimizeBurst, optimizeRefillSec) {
		return xhttp.DataResponse(c, 429, "rate limit exceeded")
	}

	req := &models.OptimizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.optimizer.Optimize(c.Request().Context(), toPricingRequest(req))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		h.logger.Error("optimize usecase error", xlogger.Error(err))
		svcmetrics.ApiErrors.WithLabelValues("optimize").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	svcmetrics.ApiLatency.WithLabelValues("optimize").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, res)
}

func (h *PricingEchoHandler) PricingHistory(c echo.Context) error {
	return listCached(h, c, "pricing_history", func(ctx context.Context, limit int) (interface{}, error) {
		recs, err := h.store.Recent(ctx, limit)
		return recs, err
	})
}

func (h *PricingEchoHandler) ChurnPredict(c echo.Context) error {
	start := time.Now()
	req := &models.ChurnAssessRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.churn.Assess(c.Request().Context(), models.ChurnInput{
		CustomerID:         req.CustomerID,
		LastPurchaseDate:   req.LastPurchaseDate,
		TotalOrders:        req.TotalOrders,
		AvgGapDays:         req.AvgGapDays,
		TotalSpend:         req.TotalSpend,
		SpendTrend:         req.SpendTrend,
		DaysSinceLastOrder: req.DaysSinceLastOrder,
		CategoryPreference: req.CategoryPreference,
	})
	if err != nil {
		h.logger.Error("churn usecase error", xlogger.Error(err))
		svcmetrics.ApiErrors.WithLabelValues("churn_predict").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	svcmetrics.ApiLatency.WithLabelValues("churn_predict").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, res)
}

func (h *PricingEchoHandler) ChurnHistory(c echo.Context) error {
	return listCached(h, c, "churn_history", func(ctx context.Context, limit int) (interface{}, error) {
		return h.churn.Recent(ctx, limit)
	})
}

func (h *PricingEchoHandler) Classify(c echo.Context) error {
	start := time.Now()
	req := &models.ClassifyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.classifier.Classify(c.Request().Context(), models.CustomerProfile{
		TotalOrders:         req.TotalOrders,
		PurchaseFrequency:   req.PurchaseFrequency,
		AvgOrderValue:       req.AvgOrderValue,
		LastPurchaseDaysAgo: req.LastPurchaseDaysAgo,
		TotalItemsBought:    req.TotalItemsBought,
	})
	if err != nil {
		h.logger.Error("classify usecase error", xlogger.Error(err))
		svcmetrics.ApiErrors.WithLabelValues("classify").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	svcmetrics.ApiLatency.WithLabelValues("classify").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, res)
}

func (h *PricingEchoHandler) CustomerHistory(c echo.Context) error {
	return listCached(h, c, "customer_history", func(ctx context.Context, limit int) (interface{}, error) {
		return h.classifier.Recent(ctx, limit)
	})
}

// Health reports readiness: encoder artifact loaded and history store reachable.
func (h *PricingEchoHandler) Health(c echo.Context) error {
	status := map[string]interface{}{
		"encoder": len(h.encoder.Categories()) > 0,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	storeOK := h.store.Health(ctx) == nil
	status["store"] = storeOK
	if !storeOK || len(h.encoder.Categories()) == 0 {
		return xhttp.DataResponse(c, 503, status)
	}
	return xhttp.SuccessResponse(c, status)
}

func listCached(h *PricingEchoHandler, c echo.Context, name string, fetch func(context.Context, int) (interface{}, error)) error {
	req := &models.HistoryListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := name + ":" + strconv.Itoa(req.Limit)
	if b, ok, _ := h.cache.GetBytes(key); ok {
		var cached json.RawMessage = b
		return xhttp.SuccessResponse(c, cached)
	}

	rows, err := fetch(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("history listing error", xlogger.String("listing", name), xlogger.Error(err))
		svcmetrics.ApiErrors.WithLabelValues(name).Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	if b, err := json.Marshal(rows); err == nil {
		_ = h.cache.SetBytes(key, b, listingCacheTTL)
	}
	return xhttp.SuccessResponse(c, rows)
}

func toPricingRequest(req *models.OptimizeRequest) *models.PricingRequest {
	out := &models.PricingRequest{
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		BasePrice:       req.BasePrice,
		Category:        req.Category,
		PastSalesVolume: req.PastSalesVolume,
	}
	if req.Month != nil || req.DayOfWeek != nil || req.IsWeekend != nil {
		now := time.Now()
		t := models.TemporalContext{
			Month:     int(now.Month()),
			DayOfWeek: util.WeekdayMonday0(now),
			Weekend:   util.WeekendFlag(now),
		}
		if req.Month != nil {
			t.Month = *req.Month
		}
		if req.DayOfWeek != nil {
			t.DayOfWeek = *req.DayOfWeek
		}
		if req.IsWeekend != nil {
			t.Weekend = *req.IsWeekend
		}
		out.Temporal = &t
	}
	return out
}
