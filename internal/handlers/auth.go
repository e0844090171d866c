package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kaveenpsnd/hustlefolio/internal/auth"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type PromoteRequest struct {
	Username string `json:"username" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
}

// Register creates a new account and returns a JWT token
func Register(db *database.DB, jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		// Normalize username to lowercase
		username := strings.ToLower(strings.TrimSpace(req.Username))
		email := strings.ToLower(strings.TrimSpace(req.Email))

		var exists bool
		err := db.Pool.QueryRow(c.Request.Context(),
			`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = $1)`, username).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": models.ErrUsernameTaken.Error()})
			return
		}

		err = db.Pool.QueryRow(c.Request.Context(),
			`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = $1)`, email).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": models.ErrEmailTaken.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		var userID uuid.UUID
		err = db.Pool.QueryRow(c.Request.Context(), `
			INSERT INTO users (username, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, username, email, string(hash), models.RoleUser).Scan(&userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
			return
		}

		token, err := jwtService.GenerateToken(username, models.RoleUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{
			Token:    token,
			UserID:   userID,
			Username: username,
			Role:     models.RoleUser,
		})
	}
}

// Login authenticates a user and returns a JWT token
func Login(db *database.DB, jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		username := strings.ToLower(strings.TrimSpace(req.Username))

		query := `
			SELECT id, username, password_hash, role
			FROM users
			WHERE LOWER(username) = $1
		`

		var userID uuid.UUID
		var dbUsername, passwordHash, role string

		err := db.Pool.QueryRow(c.Request.Context(), query, username).Scan(
			&userID, &dbUsername, &passwordHash, &role,
		)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		// Verify password
		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token, err := jwtService.GenerateToken(dbUsername, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		_, _ = db.Pool.Exec(c.Request.Context(),
			`UPDATE users SET last_login = $1 WHERE id = $2`, time.Now(), userID)

		c.JSON(http.StatusOK, AuthResponse{
			Token:    token,
			UserID:   userID,
			Username: dbUsername,
			Role:     role,
		})
	}
}

// PromoteToAdmin elevates a user to the ADMIN role given the shared
// admin secret. Promoted users must log in again for a fresh token.
func PromoteToAdmin(db *database.DB, adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PromoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if adminSecret == "" || req.Secret != adminSecret {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin secret"})
			return
		}

		tag, err := db.Pool.Exec(c.Request.Context(),
			`UPDATE users SET role = $1 WHERE LOWER(username) = LOWER($2)`,
			models.RoleAdmin, req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote user"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User promoted to admin. Log in again to refresh the token."})
	}
}
