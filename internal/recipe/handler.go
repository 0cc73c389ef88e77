package recipe

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

type recipeRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Instructions string        `json:"instructions"`
	MenuCategory string        `json:"menu_category"`
	ServingSize  string        `json:"serving_size"`
	Price        string        `json:"price"`
	SpecialNotes string        `json:"special_notes"`
	Ingredients  []lineRequest `json:"ingredients"`
}

type lineRequest struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Notes    string   `json:"notes"`
}

func (r recipeRequest) toRecipe() Recipe {
	recipe := Recipe{
		Name:         r.Name,
		Description:  r.Description,
		Instructions: r.Instructions,
		MenuCategory: r.MenuCategory,
		ServingSize:  r.ServingSize,
		Price:        r.Price,
		SpecialNotes: r.SpecialNotes,
	}
	for _, line := range r.Ingredients {
		recipe.Lines = append(recipe.Lines, Line{
			Name:      line.Name,
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			Notes:     line.Notes,
			Confirmed: true,
		})
	}
	return recipe
}

// POST /restaurants/:id/recipes
func (h *Handler) Create(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.service.Create(c.Request.Context(), restaurantID, c.GetString("userID"), req.toRecipe())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /restaurants/:id/recipes
func (h *Handler) List(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	views, err := h.service.List(c.Request.Context(), restaurantID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

// GET /restaurants/:id/recipes/suggestions
func (h *Handler) ListSuggestions(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	views, err := h.service.ListSuggestions(c.Request.Context(), restaurantID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": views})
}

// GET /recipes/:id
func (h *Handler) Get(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	view, err := h.service.Get(c.Request.Context(), recipeID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /recipes/:id
func (h *Handler) Update(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.service.Update(c.Request.Context(), recipeID, c.GetString("userID"), req.toRecipe())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /recipes/:id
func (h *Handler) Delete(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), recipeID, c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// POST /recipes/:id/confirm
func (h *Handler) Confirm(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	view, err := h.service.Confirm(c.Request.Context(), recipeID, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type onMenuRequest struct {
	IsOnMenu bool `json:"is_on_menu"`
}

// PUT /recipes/:id/menu
func (h *Handler) SetOnMenu(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req onMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetOnMenu(c.Request.Context(), recipeID, c.GetString("userID"), req.IsOnMenu); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_on_menu": req.IsOnMenu})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
