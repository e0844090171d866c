package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published checkin artifact tied to a goal
type Post struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	AuthorUsername string     `json:"author_username" db:"author_username"`
	GoalID         uuid.UUID  `json:"goal_id" db:"goal_id"`
	Title          string     `json:"title" db:"title"`
	Content        string     `json:"content" db:"content"`
	FeaturedImage  *string    `json:"featured_image,omitempty" db:"featured_image"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	Tags           []string   `json:"tags" db:"-"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Tag is a free-form label shared across posts
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreatePostRequest is the checkin submission payload
type CreatePostRequest struct {
	GoalID        uuid.UUID  `json:"goal_id" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// UpdatePostRequest edits post content without touching streak state.
// A non-nil Tags replaces the post's tag set.
type UpdatePostRequest struct {
	Title         *string    `json:"title,omitempty"`
	Content       *string    `json:"content,omitempty"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
}

// CheckinResponse is returned from checkin ingestion: the persisted
// post plus the goal after streak recomputation
type CheckinResponse struct {
	Post          Post         `json:"post"`
	Goal          GoalResponse `json:"goal"`
	PointsEarned  int          `json:"points_earned"`
	SameDay       bool         `json:"same_day"`
	FreezeUsed    bool         `json:"freeze_used"`
	GoalCompleted bool         `json:"goal_completed"`
}
