package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/storage"
)

// RecordHandler serves the persisted cart records. The store is optional;
// without one every endpoint answers 503.
type RecordHandler struct {
	store  *storage.CartRecordStore
	logger logger.Logger
}

// NewRecordHandler creates the handler. store may be nil.
func NewRecordHandler(store *storage.CartRecordStore, log logger.Logger) *RecordHandler {
	return &RecordHandler{
		store:  store,
		logger: log,
	}
}

// List handles GET /cart/records.
func (h *RecordHandler) List(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cart record persistence is disabled"})
		return
	}

	records, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list cart records", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cart records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetByDate handles GET /cart/records/:date.
func (h *RecordHandler) GetByDate(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cart record persistence is disabled"})
		return
	}

	date := c.Param("date")
	record, err := h.store.Load(c.Request.Context(), date)
	if errors.Is(err, storage.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cart record for date"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load cart record",
			logger.String("date", date),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /cart/records/:date.
func (h *RecordHandler) Delete(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cart record persistence is disabled"})
		return
	}

	date := c.Param("date")
	if err := h.store.Delete(c.Request.Context(), date); err != nil {
		h.logger.Error("Failed to delete cart record",
			logger.String("date", date),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart record"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
