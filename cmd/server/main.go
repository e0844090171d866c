package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaveenpsnd/hustlefolio/internal/auth"
	"github.com/kaveenpsnd/hustlefolio/internal/config"
	"github.com/kaveenpsnd/hustlefolio/internal/database"
	"github.com/kaveenpsnd/hustlefolio/internal/handlers"
	"github.com/kaveenpsnd/hustlefolio/internal/middleware"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// Apply schema migrations before taking traffic
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  Version,
			"database": db.PoolStats(),
		})
	})

	// Version endpoint
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": Version,
			"service": "hustlefolio",
		})
	})

	api := r.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register(db, jwtService))
		authGroup.POST("/login", handlers.Login(db, jwtService))
		authGroup.POST("/promote", handlers.PromoteToAdmin(db, cfg.AdminSecret))
	}

	// Users
	users := api.Group("/users")
	{
		users.GET("/profile/:username", handlers.GetPublicProfile(db))
		users.GET("/profile", middleware.RequireAuth(jwtService), handlers.GetOwnProfile(db))
		users.PUT("/profile", middleware.RequireAuth(jwtService), handlers.UpdateProfile(db))
		users.PUT("/password", middleware.RequireAuth(jwtService), handlers.ChangePassword(db))
		users.DELETE("/me", middleware.RequireAuth(jwtService), handlers.DeleteOwnAccount(db))
	}

	// Goals
	goals := api.Group("/goals")
	{
		goals.GET("/public/latest", handlers.PublicLatestGoals(db))
		goals.GET("/active/:username", handlers.ListActiveGoals(db))
		goals.GET("/completed/:username", handlers.ListCompletedGoals(db))
		goals.GET("/dashboard/:username", handlers.GetDashboard(db))
		goals.GET("/history/:username", handlers.ListGoalHistory(db))
		goals.DELETE("/history/:id", middleware.RequireAuth(jwtService), handlers.DeleteGoalHistory(db))
		goals.GET("/:goalId/:username", handlers.GetGoal(db))
		goals.POST("", middleware.RequireAuth(jwtService), handlers.CreateGoal(db))
		goals.PUT("/:id", middleware.RequireAuth(jwtService), handlers.UpdateGoal(db))
		goals.POST("/:id/complete", middleware.RequireAuth(jwtService), handlers.CompleteGoal(db))
		goals.DELETE("/:id", middleware.RequireAuth(jwtService), handlers.DeleteGoal(db))
	}

	// Posts
	posts := api.Group("/posts")
	{
		posts.GET("", handlers.ListPosts(db))
		posts.GET("/public/latest", handlers.PublicLatestPosts(db))
		posts.GET("/user/:username", handlers.ListPostsByUser(db))
		posts.GET("/goal/:goalId", handlers.ListPostsByGoal(db))
		posts.GET("/category/:categoryId", handlers.ListPostsByCategory(db))
		posts.GET("/:id", handlers.GetPost(db))
		posts.POST("", middleware.RequireAuth(jwtService), handlers.CreatePost(db))
		posts.PUT("/:id", middleware.RequireAuth(jwtService), handlers.UpdatePost(db))
		posts.DELETE("/:id", middleware.RequireAuth(jwtService), handlers.DeletePost(db))
	}

	// Categories
	categories := api.Group("/goal-categories")
	{
		categories.GET("", handlers.ListCategories(db))
		categories.GET("/:id", handlers.GetCategory(db))
		categories.POST("", middleware.RequireAuth(jwtService), handlers.CreateCategory(db))
	}

	// Tags
	tags := api.Group("/tags")
	{
		tags.GET("", handlers.ListTags(db))
		tags.GET("/:id", handlers.GetTag(db))
		tags.POST("", middleware.RequireAuth(jwtService), handlers.CreateTag(db))
		tags.PUT("/:id", middleware.RequireAuth(jwtService), handlers.UpdateTag(db))
		tags.DELETE("/:id", middleware.RequireAuth(jwtService), handlers.DeleteTag(db))
	}

	// Admin back office
	admin := api.Group("/admin", middleware.RequireAuth(jwtService), middleware.RequireAdmin())
	{
		admin.GET("/stats", handlers.AdminStats(db))
		admin.GET("/users", handlers.AdminListUsers(db))
		admin.DELETE("/users/:id", handlers.AdminDeleteUser(db))
		admin.DELETE("/posts/:id", handlers.AdminDeletePost(db))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
