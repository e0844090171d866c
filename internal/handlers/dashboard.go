package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
	"github.com/kaveenpsnd/hustlefolio/internal/rank"
	"github.com/kaveenpsnd/hustlefolio/internal/streak"
)

// activityWindowDays is the heatmap lookback.
const activityWindowDays = 365

// GetDashboard composes the per-user summary: goal partitions, streak
// aggregates, XP/rank and the trailing-year activity calendar. It is
// recomputed on every read.
func GetDashboard(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		ctx := c.Request.Context()

		var exists bool
		err := db.Pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		activeGoals, err := queryGoals(ctx, db,
			"WHERE LOWER(g.username) = LOWER($1) AND g.active = true ORDER BY g.created_at DESC", username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query active goals"})
			return
		}

		completedGoals, err := queryGoals(ctx, db,
			"WHERE LOWER(g.username) = LOWER($1) AND g.active = false ORDER BY g.created_at DESC", username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query completed goals"})
			return
		}

		totalXP := 0
		maxCurrentStreak := 0
		maxLongestStreak := 0

		for i := range activeGoals {
			totalXP += activeGoals[i].TotalPoints
			if activeGoals[i].CurrentStreak > maxCurrentStreak {
				maxCurrentStreak = activeGoals[i].CurrentStreak
			}
			if activeGoals[i].LongestStreak > maxLongestStreak {
				maxLongestStreak = activeGoals[i].LongestStreak
			}
		}
		for i := range completedGoals {
			totalXP += completedGoals[i].TotalPoints
			if completedGoals[i].LongestStreak > maxLongestStreak {
				maxLongestStreak = completedGoals[i].LongestStreak
			}
		}

		weeklyPulse, err := countWeeklyCheckins(c, db, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query weekly activity"})
			return
		}

		activityMap, err := buildActivityMap(c, db, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build activity map"})
			return
		}

		tier := rank.ForXP(totalXP)

		resp := models.DashboardResponse{
			ActiveGoals:        toGoalResponses(activeGoals),
			CompletedGoals:     toGoalResponses(completedGoals),
			HasActiveGoal:      len(activeGoals) > 0,
			GoalCount:          len(activeGoals),
			CompletedGoalCount: len(completedGoals),
			CurrentStreak:      maxCurrentStreak,
			LongestStreak:      maxLongestStreak,
			WeeklyPulse:        weeklyPulse,
			TotalXP:            totalXP,
			Rank:               string(tier),
			NextRank:           string(tier.Next()),
			XPToNextRank:       rank.XPToNext(totalXP),
			ActivityMap:        activityMap,
		}

		if len(activeGoals) == 0 && len(completedGoals) == 0 {
			resp.Message = "Time to start a new journey!"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// countWeeklyCheckins counts checkins across the user's active goals in
// the trailing seven days
func countWeeklyCheckins(c *gin.Context, db *database.DB, username string) (int, error) {
	since := streak.Day(time.Now()).AddDate(0, 0, -7)

	var count int
	err := db.Pool.QueryRow(c.Request.Context(), `
		SELECT COUNT(*)
		FROM goal_checkins gc
		JOIN goals g ON g.id = gc.goal_id
		WHERE LOWER(g.username) = LOWER($1) AND g.active = true AND gc.checkin_date >= $2
	`, username, since).Scan(&count)
	return count, err
}

// buildActivityMap returns a post count for each of the trailing 365
// days, zero-filled so the heatmap always has a full grid
func buildActivityMap(c *gin.Context, db *database.DB, username string) ([]models.ActivityDay, error) {
	today := streak.Day(time.Now())
	start := today.AddDate(0, 0, -(activityWindowDays - 1))

	rows, err := db.Pool.Query(c.Request.Context(), `
		SELECT created_at::date AS day, COUNT(*)
		FROM posts
		WHERE LOWER(author_username) = LOWER($1) AND created_at >= $2
		GROUP BY day
	`, username, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day.Format(time.DateOnly)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	activity := make([]models.ActivityDay, 0, activityWindowDays)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		activity = append(activity, models.ActivityDay{Date: key, Count: counts[key]})
	}

	return activity, nil
}
