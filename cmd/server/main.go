package main

import (
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/scentbase/perfume-catalog-api/internal/config"
	"github.com/scentbase/perfume-catalog-api/internal/constants"
	"github.com/scentbase/perfume-catalog-api/internal/database"
	"github.com/scentbase/perfume-catalog-api/internal/handlers"
	"github.com/scentbase/perfume-catalog-api/internal/logging"
	"github.com/scentbase/perfume-catalog-api/internal/media"
	"github.com/scentbase/perfume-catalog-api/internal/metrics"
	"github.com/scentbase/perfume-catalog-api/internal/middleware"
	"github.com/scentbase/perfume-catalog-api/internal/repository"
	"github.com/scentbase/perfume-catalog-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logging.Setup(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Report validation errors under json field names
	registerValidatorTagNames()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize media storage
	storage, err := media.NewStorage(cfg.MediaPath)
	if err != nil {
		slog.Error("Failed to initialize media storage", "error", err)
		os.Exit(1)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	// Setup session middleware. Redis backs sessions when configured;
	// otherwise they live in signed cookies.
	store, err := newSessionStore(cfg)
	if err != nil {
		slog.Error("Failed to create session store", "error", err)
		os.Exit(1)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Wire repositories, services and handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	perfumeRepo := repository.NewPerfumeRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	designerRepo := repository.NewDesignerRepository(db)

	authService := services.NewAuthService(userRepo)
	perfumeService := services.NewPerfumeService(perfumeRepo, storage)
	noteService := services.NewTagService(noteRepo)
	designerService := services.NewTagService(designerRepo)

	authHandler := handlers.NewAuthHandler(authService)
	perfumeHandler := handlers.NewPerfumeHandler(perfumeService)
	noteHandler := handlers.NewNoteHandler(noteService)
	designerHandler := handlers.NewDesignerHandler(designerService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Perfume Catalog API is running",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", metrics.Handler())

	// Uploaded images
	r.Static(constants.MediaURLPrefix, cfg.MediaPath)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateCurrentUser)
		}

		// Perfume routes (protected, owner-scoped)
		perfumes := api.Group("/perfumes")
		perfumes.Use(middleware.RequireAuth())
		{
			perfumes.GET("", perfumeHandler.ListPerfumes)
			perfumes.POST("", perfumeHandler.CreatePerfume)
			perfumes.GET("/:id", middleware.RequirePerfumeAccess(), perfumeHandler.GetPerfume)
			perfumes.PATCH("/:id", middleware.RequirePerfumeAccess(), perfumeHandler.UpdatePerfume)
			perfumes.PUT("/:id", middleware.RequirePerfumeAccess(), perfumeHandler.ReplacePerfume)
			perfumes.DELETE("/:id", middleware.RequirePerfumeAccess(), perfumeHandler.DeletePerfume)
			perfumes.POST("/:id/upload-image", middleware.RequirePerfumeAccess(), perfumeHandler.UploadImage)
		}

		// Note routes (protected, shared across users)
		notes := api.Group("/notes")
		notes.Use(middleware.RequireAuth())
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.PATCH("/:id", noteHandler.UpdateNote)
			notes.PUT("/:id", noteHandler.ReplaceNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		// Designer routes (protected, shared across users)
		designers := api.Group("/designers")
		designers.Use(middleware.RequireAuth())
		{
			designers.GET("", designerHandler.ListDesigners)
			designers.POST("", designerHandler.CreateDesigner)
			designers.PATCH("/:id", designerHandler.UpdateDesigner)
			designers.PUT("/:id", designerHandler.ReplaceDesigner)
			designers.DELETE("/:id", designerHandler.DeleteDesigner)
		}
	}

	// Start server
	slog.Info("Server starting", "port", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newSessionStore picks the session backend from the configuration.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	isProduction := cfg.GinMode == "release"
	options := sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	}

	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store.Options(options)
		return store, nil
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(options)
	return store, nil
}

// registerValidatorTagNames makes binding errors carry json field names
// instead of Go struct field names.
func registerValidatorTagNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}
