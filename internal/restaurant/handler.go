package restaurant

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name             string `json:"name"`
	City             string `json:"city"`
	CuisineType      string `json:"cuisine_type"`
	ShortDescription string `json:"short_description"`
	OpensAt          string `json:"opens_at"`
	ClosesAt         string `json:"closes_at"`
}

func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetString("userID")

	restaurant, err := h.service.CreateRestaurant(
		c.Request.Context(),
		req.Name,
		req.City,
		req.CuisineType,
		req.ShortDescription,
		req.OpensAt,
		req.ClosesAt,
		ownerID,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

func (h *Handler) ListMyRestaurants(c *gin.Context) {
	ownerID := c.GetString("userID")

	restaurants, err := h.service.ListMyRestaurants(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if restaurants == nil {
		restaurants = []*Restaurant{}
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *Handler) UploadLogo(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}

	url, err := h.service.UploadLogo(
		c.Request.Context(),
		restaurantID,
		c.GetString("userID"),
		file,
	)
	if err != nil {
		if err.Error() == "unauthorized" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"logo_url": url})
}
