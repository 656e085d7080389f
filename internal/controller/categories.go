package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoboard/internal/gate"
	"todoboard/internal/models"
	"todoboard/internal/validation"
)

// CategoryStore is the storage surface the category handlers need.
type CategoryStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Rename(ctx context.Context, id, userID, name string) error
	Delete(ctx context.Context, id, userID string) error
}

// CategoryController serves the /categories endpoints.
type CategoryController struct {
	categories CategoryStore
	validator  *validation.Validator
}

func NewCategoryController(categories CategoryStore, validator *validation.Validator) *CategoryController {
	return &CategoryController{categories: categories, validator: validator}
}

// List returns the requester's categories.
func (ct *CategoryController) List(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	categories, err := ct.categories.ListByUser(ctx, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// Create validates the payload and inserts a category owned by the
// requester. Duplicate names are allowed.
func (ct *CategoryController) Create(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in validation.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	name, err := ct.validator.ValidateCategoryName(in)
	if err != nil {
		respondError(c, err)
		return
	}
	category := &models.Category{Name: name, UserID: uid}
	if err := ct.categories.Create(ctx, category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update renames a category the requester owns. The ownership gate runs
// before validation.
func (ct *CategoryController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	category, err := ct.categories.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := gate.RequireOwner("category", id, category.UserID, uid); err != nil {
		respondError(c, err)
		return
	}

	var in validation.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	name, err := ct.validator.ValidateCategoryName(in)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ct.categories.Rename(ctx, id, uid, name); err != nil {
		respondError(c, err)
		return
	}

	updated, err := ct.categories.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a category the requester owns. Todos referencing it are
// kept; their category reference is nulled by the storage layer.
func (ct *CategoryController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	category, err := ct.categories.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := gate.RequireOwner("category", id, category.UserID, uid); err != nil {
		respondError(c, err)
		return
	}
	if err := ct.categories.Delete(ctx, id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
