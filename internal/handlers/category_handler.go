package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns the user's categories of one type, oldest first.
func (h *CategoryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryType := c.DefaultQuery("type", string(models.CategoryTypeExpense))
	if categoryType != string(models.CategoryTypeExpense) && categoryType != string(models.CategoryTypeIncome) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category type"))
		return
	}

	categories, err := h.categoryService.ListByType(userID, models.CategoryType(categoryType))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
