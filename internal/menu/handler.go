package menu

import (
	"errors"
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

type sectionRequest struct {
	Name string `json:"name"`
}

// POST /restaurants/:id/menu/sections
func (h *Handler) CreateSection(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	section, err := h.service.CreateSection(c.Request.Context(), restaurantID, c.GetString("userID"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// GET /restaurants/:id/menu/sections
func (h *Handler) ListSections(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	sections, err := h.service.ListSections(c.Request.Context(), restaurantID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// DELETE /menu/sections/:id
func (h *Handler) ArchiveSection(c *gin.Context) {
	sectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}

	if err := h.service.ArchiveSection(c.Request.Context(), sectionID, c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "section archived"})
}

type sectionRecipeRequest struct {
	RecipeID int `json:"recipe_id"`
	Position int `json:"position"`
}

// POST /menu/sections/:id/recipes
func (h *Handler) AddRecipe(c *gin.Context) {
	sectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}

	var req sectionRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}

	if err := h.service.AddRecipe(c.Request.Context(), sectionID, req.RecipeID, req.Position, c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe added to section"})
}

// DELETE /menu/sections/:id/recipes/:recipeId
func (h *Handler) RemoveRecipe(c *gin.Context) {
	sectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}
	recipeID, err := strconv.Atoi(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.service.RemoveRecipe(c.Request.Context(), sectionID, recipeID, c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe removed from section"})
}

// GET /public/restaurants/:id/menu
func (h *Handler) Browse(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	sections, err := h.service.Browse(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": sections})
}

// GET /public/restaurants/:id/menu/search?q=
func (h *Handler) Search(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	dishes, err := h.service.Search(c.Request.Context(), restaurantID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dishes": dishes})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
