package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"inquiry-service/internal/models"
	"inquiry-service/internal/policy"
	"inquiry-service/internal/service"
	"inquiry-service/internal/store"
	"inquiry-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Headers the trusted front end sends with every request. The shared
// secret authorizes the calling system; the actor headers identify the
// user it acts on behalf of.
const (
	headerAPIKey    = "X-Api-Key"
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// InquiryService is the business surface the handlers call.
// *service.InquiryService satisfies it.
type InquiryService interface {
	Create(ctx context.Context, actor policy.Actor, req *service.CreateInquiryRequest) (*models.Inquiry, error)
	ListByBuyer(ctx context.Context, actor policy.Actor, buyerID int64) ([]models.InquiryDetail, error)
	ListBySeller(ctx context.Context, actor policy.Actor, sellerID int64) ([]models.InquiryDetail, error)
	UpdateStatus(ctx context.Context, actor policy.Actor, id int64, status string) (*models.Inquiry, error)
}

// Pinger reports storage liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains the HTTP handlers
type Handler struct {
	inquiries InquiryService
	db        Pinger
	apiKey    string
}

// NewHandler creates a new HTTP handler
func NewHandler(inquiries InquiryService, db Pinger, apiKey string) *Handler {
	return &Handler{
		inquiries: inquiries,
		db:        db,
		apiKey:    apiKey,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", h.requireAPIKey)
	{
		api.POST("/inquiries", h.createInquiry)
		api.GET("/inquiries", h.listInquiries)
		api.PUT("/inquiries/:id/status", h.updateStatus)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readinessCheck pings the database before reporting ready
func (h *Handler) readinessCheck(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// requireAPIKey rejects requests without the shared secret
func (h *Handler) requireAPIKey(c *gin.Context) {
	if c.GetHeader(headerAPIKey) != h.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// actorFromHeaders extracts the acting user's identity. Requests with
// no usable actor fail fast before policy evaluation.
func actorFromHeaders(c *gin.Context) (policy.Actor, error) {
	id, err := strconv.ParseInt(c.GetHeader(headerActorID), 10, 64)
	if err != nil || id <= 0 {
		return policy.Actor{}, policy.ErrAuthRequired
	}
	role := c.GetHeader(headerActorRole)
	if !models.ValidRole(role) {
		return policy.Actor{}, policy.ErrAuthRequired
	}
	return policy.Actor{ID: id, Role: role}, nil
}

// createInquiry handles POST /api/inquiries
func (h *Handler) createInquiry(c *gin.Context) {
	actor, err := actorFromHeaders(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req service.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inq, err := h.inquiries.Create(c.Request.Context(), actor, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inq)
}

// listInquiries handles GET /api/inquiries?buyer_id=|seller_id=
func (h *Handler) listInquiries(c *gin.Context) {
	actor, err := actorFromHeaders(c)
	if err != nil {
		writeError(c, err)
		return
	}

	buyerParam := c.Query("buyer_id")
	sellerParam := c.Query("seller_id")

	var items []models.InquiryDetail
	switch {
	case buyerParam != "" && sellerParam == "":
		buyerID, err := strconv.ParseInt(buyerParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid buyer_id"})
			return
		}
		items, err = h.inquiries.ListByBuyer(c.Request.Context(), actor, buyerID)
		if err != nil {
			writeError(c, err)
			return
		}

	case sellerParam != "" && buyerParam == "":
		sellerID, err := strconv.ParseInt(sellerParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seller_id"})
			return
		}
		items, err = h.inquiries.ListBySeller(c.Request.Context(), actor, sellerID)
		if err != nil {
			writeError(c, err)
			return
		}

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of buyer_id or seller_id is required"})
		return
	}

	if items == nil {
		items = []models.InquiryDetail{}
	}
	c.JSON(http.StatusOK, items)
}

// updateStatus handles PUT /api/inquiries/:id/status
func (h *Handler) updateStatus(c *gin.Context) {
	actor, err := actorFromHeaders(c)
	if err != nil {
		writeError(c, err)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inquiry id"})
		return
	}

	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inq, err := h.inquiries.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, inq)
}

// writeError maps domain errors onto the {"error": ...} envelope
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrValidation), errors.Is(err, store.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, policy.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, policy.ErrAuthRequired):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
