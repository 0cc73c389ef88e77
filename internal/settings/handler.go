package settings

import (
	"net/http"
	"strconv"

	"feeb/internal/pricing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	s, err := h.service.Get(c.Request.Context(), restaurantID, c.GetString("userID"))
	if err != nil {
		status := http.StatusInternalServerError
		if err.Error() == "unauthorized" {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s)
}

type updateRequest struct {
	Currency    string `json:"currency"`
	PriceFormat string `json:"price_format"`
	Language    string `json:"language"`
}

func (h *Handler) Update(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	next := Settings{
		Currency:    pricing.Currency(req.Currency),
		PriceFormat: pricing.Format(req.PriceFormat),
		Language:    req.Language,
	}

	saved, err := h.service.Update(c.Request.Context(), restaurantID, c.GetString("userID"), next)
	if err != nil {
		status := http.StatusBadRequest
		if err.Error() == "unauthorized" {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}
