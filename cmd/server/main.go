package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/mnakagawa/task-message-api/internal/config"
	"github.com/mnakagawa/task-message-api/internal/constants"
	"github.com/mnakagawa/task-message-api/internal/database"
	"github.com/mnakagawa/task-message-api/internal/handlers"
	"github.com/mnakagawa/task-message-api/internal/middleware"
	"github.com/mnakagawa/task-message-api/internal/repository"
	"github.com/mnakagawa/task-message-api/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := setupLogger(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.BootstrapIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to bootstrap indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
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
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Wire repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	messageService := services.NewMessageService(messageRepo, taskRepo, log)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Message API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
		api.GET("/user", middleware.RequireAuth(), authHandler.GetCurrentUser)

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/create", taskHandler.CreateTaskForm)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.GET("/:id/edit", taskHandler.EditTaskForm)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DestroyTask)
			tasks.PUT("/close/:id", taskHandler.CloseTask)
			tasks.POST("/:id/attach", taskHandler.AttachCollaborators)
			tasks.POST("/:id/detach", taskHandler.DetachCollaborators)

			// Message routes nested under the parent task
			tasks.POST("/:id/message/create", messageHandler.CreateMessage)
			tasks.PUT("/:id/message/:message_id/update", messageHandler.UpdateMessage)
		}

		// Message routes addressed by message id
		message := api.Group("/message")
		message.Use(middleware.RequireAuth())
		{
			message.GET("/:id", messageHandler.ShowMessage)
			message.DELETE("/:id", messageHandler.DeleteMessage)
		}

		api.GET("/messages", middleware.RequireAuth(), messageHandler.ListMessages)
	}

	// Start server
	log.Infof("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
