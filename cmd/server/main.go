package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/config"
	"surveypulse/internal/cache"
	"surveypulse/internal/repository"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest"
	"surveypulse/internal/transport/ws"
)

// @title Survey Pulse API
// @version 1.0
// @description Survey authoring, response collection and analytics
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)
	log.Println("WebSocket hub started")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	blueprintRepo := repository.NewBlueprintRepo(db)

	// Initialize caches
	summaryCache := cache.NewSummaryCache(rdb, cfg.SummaryTTL)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo)
	analyticsSvc := service.NewAnalyticsService(surveyRepo, responseRepo, summaryCache)
	responseSvc := service.NewResponseService(surveyRepo, responseRepo, summaryCache)
	blueprintSvc := service.NewBlueprintService(blueprintRepo, surveySvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	// Background summary refresher
	refresher := service.NewRefresher(surveyRepo, analyticsSvc, cfg.RefreshInterval)
	go refresher.Run(ctx)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		SurveyService:      surveySvc,
		ResponseService:    responseSvc,
		AnalyticsService:   analyticsSvc,
		BlueprintService:   blueprintSvc,
		WSHub:              wsHub,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  POST/GET /v1/blueprints")
		log.Println("  GET  /v1/surveys/{surveyId}/form")
		log.Println("  POST /v1/surveys/{surveyId}/responses")
		log.Println("  GET  /v1/surveys/{surveyId}/analytics/report")
		log.Println("  WS   /v1/ws/surveys/{surveyId}/live")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
