package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
)

type TagRequest struct {
	Name string  `json:"name" binding:"required"`
	Slug *string `json:"slug,omitempty"`
}

// tagStore is satisfied by both the pool and a transaction, so tag
// linking can run inside the checkin transaction.
type tagStore interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func slugFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// linkPostTags resolves tag names to rows, creating missing ones, and
// attaches them to the post
func linkPostTags(ctx context.Context, q tagStore, postID uuid.UUID, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tagID uuid.UUID
		err := q.QueryRow(ctx, `
			INSERT INTO tags (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name, slugFor(name)).Scan(&tagID)
		if err != nil {
			return err
		}

		_, err = q.Exec(ctx, `
			INSERT INTO post_tags (post_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID)
		if err != nil {
			return err
		}
	}
	return nil
}

// attachPostTags loads the tag names for each post in one query
func attachPostTags(ctx context.Context, db *database.DB, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		posts[i].Tags = []string{}
		ids = append(ids, posts[i].ID)
		index[posts[i].ID] = i
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT pt.post_id, t.name
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var name string
		if err := rows.Scan(&postID, &name); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			posts[i].Tags = append(posts[i].Tags, name)
		}
	}
	return rows.Err()
}

// ListTags returns all tags, alphabetically
func ListTags(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Pool.Query(c.Request.Context(), `
			SELECT id, name, slug, created_at
			FROM tags
			ORDER BY name
		`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query tags"})
			return
		}
		defer rows.Close()

		tags := []models.Tag{}
		for rows.Next() {
			var tag models.Tag
			if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse tag data"})
				return
			}
			tags = append(tags, tag)
		}

		c.JSON(http.StatusOK, tags)
	}
}

// GetTag returns a single tag by ID
func GetTag(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID format"})
			return
		}

		var tag models.Tag
		err = db.Pool.QueryRow(c.Request.Context(), `
			SELECT id, name, slug, created_at
			FROM tags
			WHERE id = $1
		`, tagID).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query tag"})
			}
			return
		}

		c.JSON(http.StatusOK, tag)
	}
}

// CreateTag adds a new tag; the slug defaults to a lowercased,
// hyphenated form of the name
func CreateTag(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
			return
		}

		slug := slugFor(name)
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			slug = strings.TrimSpace(*req.Slug)
		}

		var tag models.Tag
		err := db.Pool.QueryRow(c.Request.Context(), `
			INSERT INTO tags (name, slug)
			VALUES ($1, $2)
			RETURNING id, name, slug, created_at
		`, name, slug).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists: " + name})
			return
		}

		c.JSON(http.StatusCreated, tag)
	}
}

// UpdateTag renames a tag; existing post links follow it
func UpdateTag(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID format"})
			return
		}

		var req TagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
			return
		}

		slug := slugFor(name)
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			slug = strings.TrimSpace(*req.Slug)
		}

		var tag models.Tag
		err = db.Pool.QueryRow(c.Request.Context(), `
			UPDATE tags SET name = $1, slug = $2
			WHERE id = $3
			RETURNING id, name, slug, created_at
		`, name, slug, tagID).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			} else {
				c.JSON(http.StatusConflict, gin.H{"error": "Failed to update tag", "details": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, tag)
	}
}

// DeleteTag removes a tag; post links cascade
func DeleteTag(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID format"})
			return
		}

		tag, err := db.Pool.Exec(c.Request.Context(), `DELETE FROM tags WHERE id = $1`, tagID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
	}
}
