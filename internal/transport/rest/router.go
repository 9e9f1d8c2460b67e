package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/handler"
	"surveypulse/internal/transport/rest/middleware"
	"surveypulse/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	SurveyService    *service.SurveyService
	ResponseService  *service.ResponseService
	AnalyticsService *service.AnalyticsService
	BlueprintService *service.BlueprintService
	WSHub            *ws.Hub

	CORSAllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	analyticsHandler := handler.NewAnalyticsHandler(c.SurveyService, c.AnalyticsService)
	blueprintHandler := handler.NewBlueprintHandler(c.BlueprintService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SurveyService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSAllowedOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/form", surveyHandler.GetForm).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/surveys/{surveyId}/live", wsHandler.WatchWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require owner auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireOwner)

	ownerRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/publish", surveyHandler.Publish).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/close", surveyHandler.Close).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/responses", responseHandler.List).Methods("GET", "OPTIONS")

	// Blueprint routes (owner only; public blueprints are shared reads)
	ownerRoutes.HandleFunc("/blueprints", blueprintHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/blueprints", blueprintHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/blueprints/{blueprintId}", blueprintHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/blueprints/{blueprintId}", blueprintHandler.Delete).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/blueprints/{blueprintId}/use", blueprintHandler.Use).Methods("POST", "OPTIONS")

	// Analytics routes (owner only)
	ownerRoutes.HandleFunc("/surveys/{surveyId}/analytics/summary", analyticsHandler.Summary).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/analytics/questions", analyticsHandler.Questions).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/analytics/funnel", analyticsHandler.Funnel).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/analytics/report", analyticsHandler.Report).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
