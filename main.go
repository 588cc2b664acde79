package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"prepmaster/configs"
	"prepmaster/internal/db"
	"prepmaster/internal/event"
	"prepmaster/internal/gemini"
	"prepmaster/internal/handlers"
	"prepmaster/internal/repository"
	"prepmaster/internal/service"
	"prepmaster/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configs.LoadConfig()
	gin.SetMode(configs.AppConfig.GinMode)

	if err := db.InitMongo(configs.AppConfig.MongoURI, configs.AppConfig.MongoDatabase); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer db.CloseMongo()

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if configs.AppConfig.RabbitMQURI != "" && configs.AppConfig.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(configs.AppConfig.RabbitMQURI, configs.AppConfig.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Repositories, providers, services, handlers
	userRepo := repository.NewUserRepository(db.Database)
	resultRepo := repository.NewResultRepository(db.Database)

	aiClient := gemini.NewClient(
		configs.AppConfig.GeminiBaseURL,
		configs.AppConfig.GeminiAPIKey,
		configs.AppConfig.GeminiModel,
	)

	var events service.Publisher
	if publisher != nil {
		events = publisher
	}
	testService := service.NewTestService(aiClient, resultRepo, events, configs.AppConfig.QuestionCount)

	authHandler := handlers.NewAuthHandler(userRepo)
	testHandler := handlers.NewTestHandler(testService)
	resultHandler := handlers.NewResultHandler(resultRepo, aiClient)
	notesHandler := handlers.NewNotesHandler(aiClient)

	// Session clocks tick once per second for the life of the process.
	clockCtx, stopClock := context.WithCancel(context.Background())
	defer stopClock()
	go testService.RunClock(clockCtx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   configs.AppConfig.ServiceName,
			"version":   configs.AppConfig.ServiceVersion,
			"timestamp": time.Now(),
		})
	})

	// Public routes - auth and stored user
	publicAuth := r.Group("/public/prep/auth")
	{
		publicAuth.POST("/login", func(c *gin.Context) {
			authHandler.Login(c)
			if events != nil && c.Writer.Status() < http.StatusBadRequest {
				events.Publish("prep.user.login", gin.H{"timestamp": time.Now()})
			}
		})
		publicAuth.GET("/me", authHandler.CurrentUser)
	}

	// Protected routes - everything behind the session token
	protected := r.Group("/protected/prep")
	protected.Use(authMiddleware())
	setupTestRoutes(protected, testHandler, events)

	protected.POST("/auth/logout", func(c *gin.Context) {
		authHandler.Logout(c)
		if events != nil && c.Writer.Status() < http.StatusBadRequest {
			events.Publish("prep.user.logout", gin.H{
				"user_id":   c.GetString("userID"),
				"timestamp": time.Now(),
			})
		}
	})

	protected.GET("/results", resultHandler.History)
	protected.GET("/results/:id", resultHandler.GetResult)
	protected.POST("/analysis", func(c *gin.Context) {
		resultHandler.Analyze(c)
		if events != nil && c.Writer.Status() < http.StatusBadRequest {
			events.Publish("prep.analysis.requested", gin.H{
				"user_id":   c.GetString("userID"),
				"timestamp": time.Now(),
			})
		}
	})

	protected.GET("/notes", func(c *gin.Context) {
		notesHandler.ViewNotes(c)
		if events != nil && c.Writer.Status() < http.StatusBadRequest {
			events.Publish("prep.notes.viewed", gin.H{
				"user_id":   c.GetString("userID"),
				"subject":   c.Query("subject"),
				"chapter":   c.Query("chapter"),
				"timestamp": time.Now(),
			})
		}
	})

	log.Printf("Starting %s on port %s", configs.AppConfig.ServiceName, configs.AppConfig.Port)
	if err := r.Run(":" + configs.AppConfig.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// setupTestRoutes wires the test intent surface. Events are emitted only for
// requests the handler accepted; rejected intents stay out of the stream.
func setupTestRoutes(protected *gin.RouterGroup, testHandler *handlers.TestHandler, publisher service.Publisher) {
	test := protected.Group("/test")

	// Request logging for the test surface
	test.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[TEST] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))

	{
		test.POST("/", func(c *gin.Context) {
			testHandler.StartTest(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish("prep.session.started", gin.H{
					"user_id":   c.GetString("userID"),
					"timestamp": time.Now(),
				})
			}
		})

		test.POST("/:token/select", testHandler.SelectOption)
		test.POST("/:token/review", testHandler.ToggleReview)
		test.POST("/:token/navigate", testHandler.Navigate)
		test.GET("/:token/status", testHandler.Status)

		test.POST("/:token/submit", func(c *gin.Context) {
			testHandler.Submit(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish("prep.session.submitted", gin.H{
					"session":   c.Param("token"),
					"user_id":   c.GetString("userID"),
					"timestamp": time.Now(),
				})
			}
		})

		test.POST("/:token/abandon", func(c *gin.Context) {
			testHandler.Abandon(c)
			if publisher != nil && c.Writer.Status() < http.StatusBadRequest {
				publisher.Publish("prep.session.abandoned", gin.H{
					"session":   c.Param("token"),
					"user_id":   c.GetString("userID"),
					"timestamp": time.Now(),
				})
			}
		})
	}
}

func authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromToken(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or missing token")
			c.Abort()
			return
		}
		if userID == "" {
			utils.UnauthorizedResponse(c, "Token is required for this endpoint")
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
