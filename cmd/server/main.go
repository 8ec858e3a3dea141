package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/techitup/backend/internal/assessment"
	"github.com/techitup/backend/internal/auth"
	"github.com/techitup/backend/internal/chat"
	"github.com/techitup/backend/internal/database"
	"github.com/techitup/backend/internal/flow"
	"github.com/techitup/backend/internal/middleware"
	"github.com/techitup/backend/internal/progress"
	"github.com/techitup/backend/internal/tutor"
	"github.com/techitup/backend/internal/users"
)

func main() {
	godotenv.Load()

	// A missing completion-service credential is fatal: nothing is served
	// without the tutor.
	tutorClient, err := tutor.NewTutor()
	if err != nil {
		log.Fatalf("Tutor configuration error: %v", err)
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores and session registry
	userStore := users.NewStore(db)
	progressStore := progress.NewStore(db)
	sessions := flow.NewRegistry()

	// Handlers
	authHandler := auth.NewHandler(userStore, sessions)
	flowHandler := flow.NewHandler(userStore, sessions)
	assessmentHandler := assessment.NewHandler(userStore, sessions)
	chatHandler := chat.NewHandler(userStore, progressStore, tutorClient, sessions)
	progressHandler := progress.NewHandler(progressStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	protected.HandleFunc("/session", flowHandler.GetSession).Methods("GET")
	protected.HandleFunc("/session/navigate", flowHandler.Navigate).Methods("POST")

	protected.HandleFunc("/assessment", assessmentHandler.GetAssessment).Methods("GET")
	protected.HandleFunc("/assessment", assessmentHandler.SubmitAssessment).Methods("POST")
	protected.HandleFunc("/assessment/proceed", assessmentHandler.Proceed).Methods("POST")

	protected.HandleFunc("/chat", chatHandler.Ask).Methods("POST")
	protected.HandleFunc("/chat/history", chatHandler.Transcript).Methods("GET")
	protected.HandleFunc("/chat/feedback", chatHandler.Vote).Methods("POST")

	protected.HandleFunc("/tutorials", chatHandler.Tutorial).Methods("POST")
	protected.HandleFunc("/challenges", chatHandler.Challenge).Methods("POST")
	protected.HandleFunc("/challenges/solution", chatHandler.SubmitSolution).Methods("POST")

	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := middleware.Recover(c.Handler(r))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
