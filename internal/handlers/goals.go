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

const goalColumns = `
	g.id, g.user_id, g.username, g.title, g.target_days, g.current_streak,
	g.longest_streak, g.total_points, g.freeze_count, g.streak_status,
	g.active, g.start_date, g.last_checkin, g.category_id, c.name, g.created_at
`

const goalFrom = ` FROM goals g LEFT JOIN categories c ON c.id = g.category_id `

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID, &g.UserID, &g.Username, &g.Title, &g.TargetDays, &g.CurrentStreak,
		&g.LongestStreak, &g.TotalPoints, &g.FreezeCount, &g.StreakStatus,
		&g.Active, &g.StartDate, &g.LastCheckin, &g.CategoryID, &g.CategoryName, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func queryGoals(ctx context.Context, db *database.DB, where string, args ...interface{}) ([]models.Goal, error) {
	rows, err := db.Pool.Query(ctx, "SELECT "+goalColumns+goalFrom+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachCheckins(ctx, db, goals); err != nil {
		return nil, err
	}

	return goals, nil
}

// attachCheckins loads the checkin calendar for each goal in one query
func attachCheckins(ctx context.Context, db *database.DB, goals []models.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(goals))
	index := make(map[uuid.UUID]int, len(goals))
	for i := range goals {
		goals[i].CheckinDates = []time.Time{}
		ids = append(ids, goals[i].ID)
		index[goals[i].ID] = i
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT goal_id, checkin_date
		FROM goal_checkins
		WHERE goal_id = ANY($1)
		ORDER BY checkin_date
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var goalID uuid.UUID
		var date time.Time
		if err := rows.Scan(&goalID, &date); err != nil {
			return err
		}
		if i, ok := index[goalID]; ok {
			goals[i].CheckinDates = append(goals[i].CheckinDates, date)
		}
	}
	return rows.Err()
}

// CreateGoal inserts a new active goal for the authenticated user
func CreateGoal(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req models.CreateGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		req.Title = strings.TrimSpace(req.Title)
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		initialStreak := 0
		if req.CurrentStreak != nil {
			initialStreak = *req.CurrentStreak
		}

		var userID uuid.UUID
		err := db.Pool.QueryRow(c.Request.Context(),
			`SELECT id FROM users WHERE LOWER(username) = LOWER($1)`, username).Scan(&userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var goalID uuid.UUID
		err = db.Pool.QueryRow(c.Request.Context(), `
			INSERT INTO goals (user_id, username, title, target_days, current_streak, longest_streak, category_id)
			VALUES ($1, $2, $3, $4, $5, $5, $6)
			RETURNING id
		`, userID, username, req.Title, req.TargetDays, initialStreak, req.CategoryID).Scan(&goalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal", "details": err.Error()})
			return
		}

		goals, err := queryGoals(c.Request.Context(), db, "WHERE g.id = $1", goalID)
		if err != nil || len(goals) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created goal"})
			return
		}

		c.JSON(http.StatusCreated, goals[0].ToResponse())
	}
}

// UpdateGoal patches title, target days or category. Streak counters
// and the active flag are never touched here.
func UpdateGoal(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		goalID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
			return
		}

		var req models.CreateGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		goals, err := queryGoals(c.Request.Context(), db,
			"WHERE g.id = $1 AND LOWER(g.username) = LOWER($2)", goalID, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goal"})
			return
		}
		if len(goals) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found or you don't have permission to edit it"})
			return
		}

		goal := goals[0]
		if title := strings.TrimSpace(req.Title); title != "" {
			goal.Title = title
		}
		if req.TargetDays > 0 {
			goal.TargetDays = req.TargetDays
		}
		if req.CategoryID != nil {
			goal.CategoryID = req.CategoryID
		}

		_, err = db.Pool.Exec(c.Request.Context(), `
			UPDATE goals SET title = $1, target_days = $2, category_id = $3
			WHERE id = $4
		`, goal.Title, goal.TargetDays, goal.CategoryID, goalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal", "details": err.Error()})
			return
		}

		goals, err = queryGoals(c.Request.Context(), db, "WHERE g.id = $1", goalID)
		if err != nil || len(goals) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated goal"})
			return
		}

		c.JSON(http.StatusOK, goals[0].ToResponse())
	}
}

// DeleteGoal removes a goal; associated posts and checkins cascade
func DeleteGoal(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		goalID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
			return
		}

		tag, err := db.Pool.Exec(c.Request.Context(),
			`DELETE FROM goals WHERE id = $1 AND LOWER(username) = LOWER($2)`, goalID, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found or you don't have permission to delete it"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// CompleteGoal marks a goal completed manually, independent of the
// streak auto-completion, and writes its trophy record
func CompleteGoal(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		goalID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
			return
		}

		tx, err := db.Pool.Begin(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}
		defer tx.Rollback(c.Request.Context())

		var g models.Goal
		err = tx.QueryRow(c.Request.Context(), `
			SELECT id, username, title, current_streak, streak_status, active
			FROM goals
			WHERE id = $1 AND LOWER(username) = LOWER($2)
			FOR UPDATE
		`, goalID, username).Scan(&g.ID, &g.Username, &g.Title, &g.CurrentStreak, &g.StreakStatus, &g.Active)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found or you don't have permission to complete it"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goal"})
			}
			return
		}

		if !g.Active {
			c.JSON(http.StatusConflict, gin.H{"error": models.ErrGoalInactive.Error()})
			return
		}

		if _, err := tx.Exec(c.Request.Context(),
			`UPDATE goals SET active = false WHERE id = $1`, goalID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete goal"})
			return
		}

		if _, err := tx.Exec(c.Request.Context(), `
			INSERT INTO goal_history (username, title, final_streak, completed_date)
			VALUES ($1, $2, $3, $4)
		`, g.Username, g.Title+" ["+g.StreakStatus+"]", g.CurrentStreak, streak.Day(time.Now())); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record goal history"})
			return
		}

		if err := tx.Commit(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit"})
			return
		}

		goals, err := queryGoals(c.Request.Context(), db, "WHERE g.id = $1", goalID)
		if err != nil || len(goals) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goal"})
			return
		}

		c.JSON(http.StatusOK, goals[0].ToResponse())
	}
}

// GetGoal returns a single goal owned by the given username
func GetGoal(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, err := uuid.Parse(c.Param("goalId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
			return
		}
		username := c.Param("username")

		goals, err := queryGoals(c.Request.Context(), db,
			"WHERE g.id = $1 AND LOWER(g.username) = LOWER($2)", goalID, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goal"})
			return
		}
		if len(goals) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}

		c.JSON(http.StatusOK, goals[0].ToResponse())
	}
}

// ListActiveGoals returns a user's active goals
func ListActiveGoals(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		goals, err := queryGoals(c.Request.Context(), db,
			"WHERE LOWER(g.username) = LOWER($1) AND g.active = true ORDER BY g.created_at DESC", username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goals"})
			return
		}

		c.JSON(http.StatusOK, toGoalResponses(goals))
	}
}

// ListCompletedGoals returns a user's completed goals
func ListCompletedGoals(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		goals, err := queryGoals(c.Request.Context(), db,
			"WHERE LOWER(g.username) = LOWER($1) AND g.active = false ORDER BY g.created_at DESC", username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goals"})
			return
		}

		c.JSON(http.StatusOK, toGoalResponses(goals))
	}
}

// PublicLatestGoals returns all goals across users, newest first
func PublicLatestGoals(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := queryGoals(c.Request.Context(), db, "ORDER BY g.created_at DESC LIMIT 50")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query goals"})
			return
		}

		c.JSON(http.StatusOK, toGoalResponses(goals))
	}
}

func toGoalResponses(goals []models.Goal) []models.GoalResponse {
	out := make([]models.GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, goals[i].ToResponse())
	}
	return out
}
