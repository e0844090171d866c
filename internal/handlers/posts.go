package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/middleware"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
	"github.com/kaveenpsnd/hustlefolio/internal/streak"
)

const postColumns = `
	id, author_username, goal_id, title, content, featured_image,
	category_id, created_at, updated_at
`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.AuthorUsername, &p.GoalID, &p.Title, &p.Content,
		&p.FeaturedImage, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func queryPosts(ctx context.Context, db *database.DB, where string, args ...interface{}) ([]models.Post, error) {
	rows, err := db.Pool.Query(ctx, "SELECT "+postColumns+" FROM posts "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachPostTags(ctx, db, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// CreatePost is the checkin ingestion path: it persists the post and
// advances the goal's streak in a single transaction. The goal row is
// locked so two same-day submissions cannot double-increment.
func CreatePost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req models.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Post title is required"})
			return
		}

		ctx := c.Request.Context()

		tx, err := db.Pool.Begin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}
		defer tx.Rollback(ctx)

		// Lock the goal row for the duration of the checkin
		var g models.Goal
		err = tx.QueryRow(ctx, `
			SELECT id, username, title, target_days, current_streak, longest_streak,
			       total_points, freeze_count, streak_status, active, last_checkin
			FROM goals
			WHERE id = $1 AND LOWER(username) = LOWER($2)
			FOR UPDATE
		`, req.GoalID, username).Scan(
			&g.ID, &g.Username, &g.Title, &g.TargetDays, &g.CurrentStreak, &g.LongestStreak,
			&g.TotalPoints, &g.FreezeCount, &g.StreakStatus, &g.Active, &g.LastCheckin,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found or not owned by you"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goal"})
			}
			return
		}

		if !g.Active {
			c.JSON(http.StatusConflict, gin.H{"error": models.ErrGoalInactive.Error()})
			return
		}

		// Checkin date comes from the server clock, not the client
		today := streak.Day(time.Now())

		post, err := scanPost(tx.QueryRow(ctx, `
			INSERT INTO posts (author_username, goal_id, title, content, featured_image, category_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+postColumns,
			g.Username, g.ID, req.Title, req.Content, req.FeaturedImage, req.CategoryID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "details": err.Error()})
			return
		}

		if err := linkPostTags(ctx, tx, post.ID, req.Tags); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach tags"})
			return
		}

		res := streak.Advance(streak.State{
			CurrentStreak: g.CurrentStreak,
			LongestStreak: g.LongestStreak,
			TotalPoints:   g.TotalPoints,
			FreezeCount:   g.FreezeCount,
			TargetDays:    g.TargetDays,
			StreakStatus:  g.StreakStatus,
			LastCheckin:   g.LastCheckin,
		}, today)

		if !res.SameDay {
			active := !res.Completed
			_, err = tx.Exec(ctx, `
				UPDATE goals
				SET current_streak = $1, longest_streak = $2, total_points = $3,
				    freeze_count = $4, streak_status = $5, active = $6, last_checkin = $7
				WHERE id = $8
			`, res.CurrentStreak, res.LongestStreak, res.TotalPoints,
				res.FreezeCount, res.StreakStatus, active, today, g.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update streak"})
				return
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO goal_checkins (goal_id, checkin_date)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, g.ID, today)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record checkin"})
				return
			}

			if res.Completed {
				_, err = tx.Exec(ctx, `
					INSERT INTO goal_history (username, title, final_streak, completed_date)
					VALUES ($1, $2, $3, $4)
				`, g.Username, g.Title+" ["+res.StreakStatus+"]", res.CurrentStreak, today)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record goal history"})
					return
				}
			}
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit checkin"})
			return
		}

		goals, err := queryGoals(ctx, db, "WHERE g.id = $1", g.ID)
		if err != nil || len(goals) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goal"})
			return
		}

		created := []models.Post{*post}
		if err := attachPostTags(ctx, db, created); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post tags"})
			return
		}

		c.JSON(http.StatusCreated, models.CheckinResponse{
			Post:          created[0],
			Goal:          goals[0].ToResponse(),
			PointsEarned:  res.PointsEarned,
			SameDay:       res.SameDay,
			FreezeUsed:    res.FreezeUsed,
			GoalCompleted: res.Completed,
		})
	}
}

// GetPost returns a single post by ID
func GetPost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
			return
		}

		posts, err := queryPosts(c.Request.Context(), db, "WHERE id = $1", postID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query post"})
			return
		}
		if len(posts) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		c.JSON(http.StatusOK, posts[0])
	}
}

// ListPosts returns every post, oldest first
func ListPosts(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := queryPosts(c.Request.Context(), db, "ORDER BY created_at")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// PublicLatestPosts returns recent posts across all users
func PublicLatestPosts(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := queryPosts(c.Request.Context(), db, "ORDER BY created_at DESC LIMIT 50")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// ListPostsByUser returns a user's posts, newest first
func ListPostsByUser(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		posts, err := queryPosts(c.Request.Context(), db,
			"WHERE LOWER(author_username) = LOWER($1) ORDER BY created_at DESC", username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// ListPostsByGoal returns all posts tied to a goal
func ListPostsByGoal(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, err := uuid.Parse(c.Param("goalId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
			return
		}

		posts, err := queryPosts(c.Request.Context(), db,
			"WHERE goal_id = $1 ORDER BY created_at DESC", goalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// ListPostsByCategory returns all posts tagged with a category
func ListPostsByCategory(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("categoryId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
			return
		}

		posts, err := queryPosts(c.Request.Context(), db,
			"WHERE category_id = $1 ORDER BY created_at DESC", categoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// UpdatePost edits post content. Streak state is never re-triggered.
func UpdatePost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		postID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
			return
		}

		var req models.UpdatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		post, err := scanPost(db.Pool.QueryRow(c.Request.Context(),
			"SELECT "+postColumns+" FROM posts WHERE id = $1 AND LOWER(author_username) = LOWER($2)",
			postID, username))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or you don't have permission to edit it"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query post"})
			}
			return
		}

		if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
			post.Title = *req.Title
		}
		if req.Content != nil {
			post.Content = *req.Content
		}
		if req.FeaturedImage != nil {
			post.FeaturedImage = req.FeaturedImage
		}
		if req.CategoryID != nil {
			post.CategoryID = req.CategoryID
		}

		updated, err := scanPost(db.Pool.QueryRow(c.Request.Context(), `
			UPDATE posts
			SET title = $1, content = $2, featured_image = $3, category_id = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING `+postColumns,
			post.Title, post.Content, post.FeaturedImage, post.CategoryID, postID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}

		if req.Tags != nil {
			if _, err := db.Pool.Exec(c.Request.Context(),
				`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags"})
				return
			}
			if err := linkPostTags(c.Request.Context(), db.Pool, postID, *req.Tags); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags"})
				return
			}
		}

		edited := []models.Post{*updated}
		if err := attachPostTags(c.Request.Context(), db, edited); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post tags"})
			return
		}

		c.JSON(http.StatusOK, edited[0])
	}
}

// DeletePost removes a post. Streak effects are not reversed.
func DeletePost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		postID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
			return
		}

		tag, err := db.Pool.Exec(c.Request.Context(),
			`DELETE FROM posts WHERE id = $1 AND LOWER(author_username) = LOWER($2)`, postID, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or you don't have permission to delete it"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
