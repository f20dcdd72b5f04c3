// Package handlers implements the HTTP dispatch layer: it receives auto-cart
// requests, establishes the vendor page precondition, and hands validated
// work to the cart orchestrator.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zolikazer/forktimize-autocart/internal/cart"
	"github.com/Zolikazer/forktimize-autocart/internal/fetch"
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/telemetry"
	"github.com/Zolikazer/forktimize-autocart/internal/vendor"
)

// ActivatorFactory builds the activator used against one fetched page.
type ActivatorFactory func(baseURL string) (page.Activator, error)

// CartHandler serves the auto-cart and availability endpoints.
type CartHandler struct {
	registry     *vendor.Registry
	fetcher      fetch.Fetcher
	service      *cart.Service
	newActivator ActivatorFactory
	metrics      *telemetry.Metrics
	logger       logger.Logger
}

// NewCartHandler creates the handler. metrics may be nil.
func NewCartHandler(
	registry *vendor.Registry,
	fetcher fetch.Fetcher,
	service *cart.Service,
	newActivator ActivatorFactory,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *CartHandler {
	return &CartHandler{
		registry:     registry,
		fetcher:      fetcher,
		service:      service,
		newActivator: newActivator,
		metrics:      metrics,
		logger:       log,
	}
}

// AutoCart handles POST /cart/auto. The response always carries the full
// per-food result list; overall success is true only when every food
// succeeded. A vendor mismatch rejects the whole batch before any food is
// attempted.
func (h *CartHandler) AutoCart(c *gin.Context) {
	var req models.AutoCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid auto-cart request", logger.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if len(req.Foods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foods must not be empty"})
		return
	}

	v, pg, ok := h.vendorPage(c, req.Vendor)
	if !ok {
		return
	}

	activator, err := h.newActivator(pg.BaseURL)
	if err != nil {
		h.logger.Error("Failed to build activator", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare cart actions"})
		return
	}

	q := page.NewQuery(pg.Document, v.Selectors, activator, h.logger)
	results := h.service.ProcessAutoCart(c.Request.Context(), q, &req)

	c.JSON(http.StatusOK, models.Summarize(results))
}

// Availability handles GET /cart/availability. It reports what an auto-cart
// run could match for the given date without actuating anything.
func (h *CartHandler) Availability(c *gin.Context) {
	vendorID := c.Query("vendor")
	date := c.Query("date")
	foodsParam := c.Query("foods")
	if vendorID == "" || date == "" || foodsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendor, date and foods are required"})
		return
	}

	foods := splitFoods(foodsParam)

	v, pg, ok := h.vendorPage(c, vendorID)
	if !ok {
		return
	}

	q := page.NewQuery(pg.Document, v.Selectors, page.NopActivator{}, h.logger)
	report := cart.CheckAvailability(q, foods, date)

	c.JSON(http.StatusOK, report)
}

// Vendors handles GET /vendors.
func (h *CartHandler) Vendors(c *gin.Context) {
	vendors := h.registry.List()
	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// vendorPage resolves the vendor config, fetches its menu page and verifies
// the page actually belongs to that vendor. The hostname check is the batch
// precondition: on the wrong site no per-food matching is meaningful.
func (h *CartHandler) vendorPage(c *gin.Context, vendorID string) (models.VendorConfig, *fetch.Page, bool) {
	v, found := h.registry.Lookup(vendorID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Unknown vendor %q", vendorID)})
		return models.VendorConfig{}, nil, false
	}

	pg, err := h.fetcher.FetchMenu(c.Request.Context(), v)
	if err != nil {
		h.logger.Error("Failed to fetch vendor menu",
			logger.String("vendor", v.ID),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch vendor menu page"})
		return models.VendorConfig{}, nil, false
	}

	if !vendor.MatchesHostname(v, pg.Hostname) {
		h.logger.Warn("Vendor mismatch",
			logger.String("vendor", v.ID),
			logger.String("expected_hostname", v.Hostname),
			logger.String("actual_hostname", pg.Hostname),
			logger.Error(cart.ErrVendorMismatch),
		)
		if h.metrics != nil {
			h.metrics.BatchesTotal.WithLabelValues("vendor_mismatch").Inc()
		}
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": fmt.Sprintf("Wrong vendor - switch to your %s tab", v.Name),
			"error":   "vendor_mismatch",
		})
		return models.VendorConfig{}, nil, false
	}

	return v, pg, true
}

func splitFoods(param string) []string {
	parts := strings.Split(param, ",")
	foods := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			foods = append(foods, trimmed)
		}
	}
	return foods
}
