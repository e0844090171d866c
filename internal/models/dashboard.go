package models

// ActivityDay is one cell of the trailing-year heatmap calendar
type ActivityDay struct {
	Date  string `json:"date"` // ISO day, e.g. "2026-08-29"
	Count int    `json:"count"`
}

// DashboardResponse is the read-optimized per-user summary
type DashboardResponse struct {
	ActiveGoals        []GoalResponse `json:"active_goals"`
	CompletedGoals     []GoalResponse `json:"completed_goals"`
	HasActiveGoal      bool           `json:"has_active_goal"`
	GoalCount          int            `json:"goal_count"`
	CompletedGoalCount int            `json:"completed_goal_count"`
	CurrentStreak      int            `json:"current_streak"`
	LongestStreak      int            `json:"longest_streak"`
	WeeklyPulse        int            `json:"weekly_pulse"`
	TotalXP            int            `json:"total_xp"`
	Rank               string         `json:"rank"`
	NextRank           string         `json:"next_rank"`
	XPToNextRank       int            `json:"xp_to_next_rank"`
	ActivityMap        []ActivityDay  `json:"activity_map"`
	Message            string         `json:"message,omitempty"`
}

// AdminStatsResponse is the back-office global counters view
type AdminStatsResponse struct {
	TotalUsers int `json:"total_users"`
	TotalPosts int `json:"total_posts"`
	TotalGoals int `json:"total_goals"`
}
