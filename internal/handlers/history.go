package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/middleware"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
)

// ListGoalHistory returns a user's completed-goal trophies, newest first
func ListGoalHistory(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		rows, err := db.Pool.Query(c.Request.Context(), `
			SELECT id, username, title, final_streak, completed_date
			FROM goal_history
			WHERE LOWER(username) = LOWER($1)
			ORDER BY completed_date DESC
		`, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goal history"})
			return
		}
		defer rows.Close()

		history := []models.GoalHistory{}
		for rows.Next() {
			var h models.GoalHistory
			if err := rows.Scan(&h.ID, &h.Username, &h.Title, &h.FinalStreak, &h.CompletedDate); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse history data"})
				return
			}
			history = append(history, h)
		}

		c.JSON(http.StatusOK, history)
	}
}

// DeleteGoalHistory removes a trophy record owned by the caller
func DeleteGoalHistory(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		historyID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history ID format"})
			return
		}

		tag, err := db.Pool.Exec(c.Request.Context(),
			`DELETE FROM goal_history WHERE id = $1 AND LOWER(username) = LOWER($2)`, historyID, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete history record"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trophy not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
