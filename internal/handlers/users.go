package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/middleware"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type UpdateProfileRequest struct {
	FullName        *string `json:"full_name,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	WebsiteURL      *string `json:"website_url,omitempty"`
	GithubUsername  *string `json:"github_username,omitempty"`
	TwitterUsername *string `json:"twitter_username,omitempty"`
	LinkedinURL     *string `json:"linkedin_url,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

const userColumns = `
	id, username, email, password_hash, role, full_name, bio,
	profile_picture_url, website_url, github_username, twitter_username,
	linkedin_url, created_at, last_login
`

func getUserByUsername(c *gin.Context, db *database.DB, username string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(c.Request.Context(),
		"SELECT "+userColumns+" FROM users WHERE LOWER(username) = LOWER($1)", username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.Bio,
		&u.ProfilePictureURL, &u.WebsiteURL, &u.GithubUsername, &u.TwitterUsername,
		&u.LinkedinURL, &u.CreatedAt, &u.LastLogin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOwnProfile returns the authenticated user's profile
func GetOwnProfile(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := getUserByUsername(c, db, username)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			}
			return
		}

		c.JSON(http.StatusOK, user.ToProfileResponse())
	}
}

// GetPublicProfile returns any user's public profile by username
func GetPublicProfile(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getUserByUsername(c, db, c.Param("username"))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			}
			return
		}

		c.JSON(http.StatusOK, user.ToProfileResponse())
	}
}

// UpdateProfile applies a partial update to the caller's profile fields
func UpdateProfile(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		user, err := getUserByUsername(c, db, username)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			}
			return
		}

		if req.FullName != nil {
			user.FullName = req.FullName
		}
		if req.Bio != nil {
			user.Bio = req.Bio
		}
		if req.WebsiteURL != nil {
			user.WebsiteURL = req.WebsiteURL
		}
		if req.GithubUsername != nil {
			user.GithubUsername = req.GithubUsername
		}
		if req.TwitterUsername != nil {
			user.TwitterUsername = req.TwitterUsername
		}
		if req.LinkedinURL != nil {
			user.LinkedinURL = req.LinkedinURL
		}

		_, err = db.Pool.Exec(c.Request.Context(), `
			UPDATE users
			SET full_name = $1, bio = $2, website_url = $3,
			    github_username = $4, twitter_username = $5, linkedin_url = $6
			WHERE id = $7
		`, user.FullName, user.Bio, user.WebsiteURL,
			user.GithubUsername, user.TwitterUsername, user.LinkedinURL, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, user.ToProfileResponse())
	}
}

// ChangePassword verifies the current password before setting a new one
func ChangePassword(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		user, err := getUserByUsername(c, db, username)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		_, err = db.Pool.Exec(c.Request.Context(),
			`UPDATE users SET password_hash = $1 WHERE id = $2`, string(hash), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

// DeleteOwnAccount removes the caller's account and everything tied
// to it: posts, goal history, and the goals and checkins that cascade
// from the users row
func DeleteOwnAccount(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := middleware.GetAuthUsername(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		ctx := c.Request.Context()

		tx, err := db.Pool.Begin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}
		defer tx.Rollback(ctx)

		if err := deleteUserData(ctx, tx, username); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account data"})
			return
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM users WHERE LOWER(username) = LOWER($1)`, username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
