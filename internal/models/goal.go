package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kaveenpsnd/hustlefolio/internal/streak"
)

// Goal represents a habit commitment with its streak counters
type Goal struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	UserID        uuid.UUID   `json:"user_id" db:"user_id"`
	Username      string      `json:"username" db:"username"`
	Title         string      `json:"title" db:"title"`
	TargetDays    int         `json:"target_days" db:"target_days"`
	CurrentStreak int         `json:"current_streak" db:"current_streak"`
	LongestStreak int         `json:"longest_streak" db:"longest_streak"`
	TotalPoints   int         `json:"total_points" db:"total_points"`
	FreezeCount   int         `json:"freeze_count" db:"freeze_count"`
	StreakStatus  string      `json:"streak_status" db:"streak_status"`
	Active        bool        `json:"active" db:"active"`
	StartDate     time.Time   `json:"start_date" db:"start_date"`
	LastCheckin   *time.Time  `json:"last_checkin,omitempty" db:"last_checkin"`
	CategoryID    *uuid.UUID  `json:"category_id,omitempty" db:"category_id"`
	CategoryName  *string     `json:"category_name,omitempty" db:"-"`
	CheckinDates  []time.Time `json:"checkin_dates" db:"-"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// GoalHistory is a trophy record written when a goal completes
type GoalHistory struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Title         string    `json:"title" db:"title"`
	FinalStreak   int       `json:"final_streak" db:"final_streak"`
	CompletedDate time.Time `json:"completed_date" db:"completed_date"`
}

// Category is an informational tag shared by goals and posts
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateGoalRequest is the payload for creating or updating a goal
type CreateGoalRequest struct {
	Title         string     `json:"title"`
	TargetDays    int        `json:"target_days"`
	CurrentStreak *int       `json:"current_streak,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
}

// Validate reports whether the payload can create a goal. Failures
// wrap ErrValidation so handlers can map them to a 400.
func (r *CreateGoalRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: goal title is required", ErrValidation)
	}
	if r.TargetDays <= 0 {
		return fmt.Errorf("%w: target days must be positive", ErrValidation)
	}
	if r.CurrentStreak != nil && *r.CurrentStreak < 0 {
		return fmt.Errorf("%w: initial streak cannot be negative", ErrValidation)
	}
	return nil
}

// GoalResponse is the API shape for a single goal
type GoalResponse struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Title         string     `json:"title"`
	TargetDays    int        `json:"target_days"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	TotalPoints   int        `json:"total_points"`
	FreezeCount   int        `json:"freeze_count"`
	StreakStatus  string     `json:"streak_status"`
	Active        bool       `json:"active"`
	CompletionPct float64    `json:"completion_percentage"`
	StartDate     string     `json:"start_date"`
	LastCheckin   *string    `json:"last_checkin,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	CategoryName  *string    `json:"category_name,omitempty"`
	CheckinDates  []string   `json:"checkin_dates"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts Goal to GoalResponse, with calendar dates
// rendered as ISO day strings for the heatmap
func (g *Goal) ToResponse() GoalResponse {
	dates := make([]string, 0, len(g.CheckinDates))
	for _, d := range g.CheckinDates {
		dates = append(dates, d.Format(time.DateOnly))
	}

	resp := GoalResponse{
		ID:            g.ID,
		Username:      g.Username,
		Title:         g.Title,
		TargetDays:    g.TargetDays,
		CurrentStreak: g.CurrentStreak,
		LongestStreak: g.LongestStreak,
		TotalPoints:   g.TotalPoints,
		FreezeCount:   g.FreezeCount,
		StreakStatus:  g.StreakStatus,
		Active:        g.Active,
		CompletionPct: streak.CompletionPercentage(g.CurrentStreak, g.TargetDays),
		StartDate:     g.StartDate.Format(time.DateOnly),
		CategoryID:    g.CategoryID,
		CategoryName:  g.CategoryName,
		CheckinDates:  dates,
		CreatedAt:     g.CreatedAt,
	}

	if g.LastCheckin != nil {
		s := g.LastCheckin.Format(time.DateOnly)
		resp.LastCheckin = &s
	}

	return resp
}
