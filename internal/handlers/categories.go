package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// ListCategories returns all categories, alphabetically
func ListCategories(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Pool.Query(c.Request.Context(), `
			SELECT id, name, description, created_at
			FROM categories
			ORDER BY name
		`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query categories"})
			return
		}
		defer rows.Close()

		categories := []models.Category{}
		for rows.Next() {
			var cat models.Category
			if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse category data"})
				return
			}
			categories = append(categories, cat)
		}

		c.JSON(http.StatusOK, categories)
	}
}

// GetCategory returns a single category by ID
func GetCategory(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
			return
		}

		var cat models.Category
		err = db.Pool.QueryRow(c.Request.Context(), `
			SELECT id, name, description, created_at
			FROM categories
			WHERE id = $1
		`, categoryID).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query category"})
			}
			return
		}

		c.JSON(http.StatusOK, cat)
	}
}

// CreateCategory adds a new category tag
func CreateCategory(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
			return
		}

		var cat models.Category
		err := db.Pool.QueryRow(c.Request.Context(), `
			INSERT INTO categories (name, description)
			VALUES ($1, $2)
			RETURNING id, name, description, created_at
		`, name, req.Description).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Failed to create category", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, cat)
	}
}
