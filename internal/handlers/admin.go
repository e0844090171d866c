package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
)

// deleteUserData sweeps the username-keyed tables before the users row
// goes away. Goals and their checkins cascade from the users row, and
// post tags cascade from posts, but posts and goal_history are keyed
// by username and need an explicit delete.
func deleteUserData(ctx context.Context, tx pgx.Tx, username string) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM posts WHERE LOWER(author_username) = LOWER($1)`, username); err != nil {
		return err
	}
	_, err := tx.Exec(ctx,
		`DELETE FROM goal_history WHERE LOWER(username) = LOWER($1)`, username)
	return err
}

// AdminStats returns global user/post/goal counts for the back office
func AdminStats(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats models.AdminStatsResponse
		err := db.Pool.QueryRow(c.Request.Context(), `
			SELECT
				(SELECT COUNT(*) FROM users),
				(SELECT COUNT(*) FROM posts),
				(SELECT COUNT(*) FROM goals)
		`).Scan(&stats.TotalUsers, &stats.TotalPosts, &stats.TotalGoals)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query stats"})
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// AdminListUsers returns every registered user
func AdminListUsers(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Pool.Query(c.Request.Context(), `
			SELECT id, username, email, role, created_at
			FROM users
			ORDER BY created_at DESC
		`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
			return
		}
		defer rows.Close()

		users := []models.UserAdminResponse{}
		for rows.Next() {
			var u models.UserAdminResponse
			if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user data"})
				return
			}
			users = append(users, u)
		}

		c.JSON(http.StatusOK, gin.H{
			"users": users,
			"count": len(users),
		})
	}
}

// AdminDeleteUser removes an account; goals and posts cascade
func AdminDeleteUser(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}

		tx, err := db.Pool.Begin(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}
		defer tx.Rollback(c.Request.Context())

		var username string
		err = tx.QueryRow(c.Request.Context(),
			`SELECT username FROM users WHERE id = $1`, userID).Scan(&username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := deleteUserData(c.Request.Context(), tx, username); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user data"})
			return
		}
		if _, err := tx.Exec(c.Request.Context(),
			`DELETE FROM users WHERE id = $1`, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}

		if err := tx.Commit(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// AdminDeletePost removes any post regardless of ownership
func AdminDeletePost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
			return
		}

		tag, err := db.Pool.Exec(c.Request.Context(),
			`DELETE FROM posts WHERE id = $1`, postID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
	}
}
