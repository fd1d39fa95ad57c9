package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/config"
	"github.com/serwaa467/ElderCare_Manager/internal/database"
	"github.com/serwaa467/ElderCare_Manager/internal/handlers"
	"github.com/serwaa467/ElderCare_Manager/internal/jobs"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	scheduler "github.com/serwaa467/ElderCare_Manager/internal/scheduler"
	"github.com/serwaa467/ElderCare_Manager/internal/scheduling"
	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/serwaa467/ElderCare_Manager/pkg/kvstore"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"github.com/serwaa467/ElderCare_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// The throttle state survives restarts so notifications do not refire
	// every time the server comes back up.
	throttleStore, err := kvstore.NewFileStore(cfg.ThrottlePath)
	if err != nil {
		log.Fatalf("Throttle state store error: %v", err)
	}

	// --- Repositories ---
	residentRepo := repository.NewResidentRepository(db)
	repositionRepo := repository.NewRepositionRepository(db)
	mealRepo := repository.NewMealRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	carePlanRepo := repository.NewCarePlanRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// --- Services ---
	residentService := services.NewResidentService(residentRepo)
	repositionService := services.NewRepositionService(repositionRepo, residentRepo)
	mealService := services.NewMealService(mealRepo, residentRepo)
	taskService := services.NewTaskService(taskRepo)
	carePlanService := services.NewCarePlanService(carePlanRepo)
	assistantService := services.NewAssistantService(conversationRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	analyticsService := services.NewAnalyticsService(
		residentRepo, repositionRepo, mealRepo, taskRepo, carePlanRepo, conversationRepo,
	)
	notificationService := services.NewNotificationService(
		notificationRepo, residentRepo, repositionRepo, throttleStore,
		scheduling.TickOptions{
			DueSoonMins:   cfg.DueSoonMins,
			ReNotifyAfter: time.Duration(cfg.NotifyCooldown) * time.Minute,
		},
	)

	// --- Handlers ---
	residentHandler := handlers.NewResidentHandler(residentService)
	repositionHandler := handlers.NewRepositionHandler(repositionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	mealHandler := handlers.NewMealHandler(mealService)
	taskHandler := handlers.NewTaskHandler(taskService)
	carePlanHandler := handlers.NewCarePlanHandler(carePlanService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Resident routes
	residentRoutes := router.PathPrefix("/residents").Subrouter()
	residentRoutes.HandleFunc("", residentHandler.CreateResidentHandler).Methods("POST")
	residentRoutes.HandleFunc("", residentHandler.ListResidentsHandler).Methods("GET")
	residentRoutes.HandleFunc("/export", residentHandler.ExportResidentsHandler).Methods("GET")
	residentRoutes.HandleFunc("/import", residentHandler.ImportResidentsHandler).Methods("POST")
	residentRoutes.HandleFunc("/{id}", residentHandler.GetResidentHandler).Methods("GET")
	residentRoutes.HandleFunc("/{id}", residentHandler.UpdateResidentHandler).Methods("PUT")
	residentRoutes.HandleFunc("/{id}", residentHandler.DeleteResidentHandler).Methods("DELETE")

	// Repositioning routes
	repositionRoutes := router.PathPrefix("/reposition").Subrouter()
	repositionRoutes.HandleFunc("/guidance", repositionHandler.GuidanceHandler).Methods("POST")
	repositionRoutes.HandleFunc("/guide", repositionHandler.GuideStepsHandler).Methods("GET")
	repositionRoutes.HandleFunc("/{id}/interval", repositionHandler.SaveIntervalHandler).Methods("PUT")
	repositionRoutes.HandleFunc("/{id}/due", repositionHandler.DueStatusHandler).Methods("GET")
	repositionRoutes.HandleFunc("/{id}/complete", repositionHandler.CompleteHandler).Methods("POST")
	repositionRoutes.HandleFunc("/{id}/history", repositionHandler.HistoryHandler).Methods("GET")

	// Analytics routes
	analyticsRoutes := router.PathPrefix("/analytics").Subrouter()
	analyticsRoutes.HandleFunc("/summary", analyticsHandler.SummaryHandler).Methods("GET")
	analyticsRoutes.HandleFunc("/adherence", analyticsHandler.AdherenceHandler).Methods("GET")
	analyticsRoutes.HandleFunc("/adherence/export", analyticsHandler.ExportAdherenceHandler).Methods("GET")

	// Meal routes
	mealRoutes := router.PathPrefix("/meals").Subrouter()
	mealRoutes.HandleFunc("", mealHandler.CreateMealHandler).Methods("POST")
	mealRoutes.HandleFunc("", mealHandler.GetMealsHandler).Methods("GET")
	mealRoutes.HandleFunc("/feedback", mealHandler.GetFeedbackHandler).Methods("GET")
	mealRoutes.HandleFunc("/{id}", mealHandler.DeleteMealHandler).Methods("DELETE")
	mealRoutes.HandleFunc("/{id}/feedback", mealHandler.SubmitFeedbackHandler).Methods("POST")

	// Task routes
	taskRoutes := router.PathPrefix("/tasks").Subrouter()
	taskRoutes.HandleFunc("", taskHandler.CreateTaskHandler).Methods("POST")
	taskRoutes.HandleFunc("", taskHandler.GetTasksHandler).Methods("GET")
	taskRoutes.HandleFunc("/{id}/status", taskHandler.SetStatusHandler).Methods("PATCH")
	taskRoutes.HandleFunc("/{id}/nudge", taskHandler.NudgeHandler).Methods("POST")

	// Care plan routes
	carePlanRoutes := router.PathPrefix("/careplans").Subrouter()
	carePlanRoutes.HandleFunc("", carePlanHandler.CreateCarePlanHandler).Methods("POST")
	carePlanRoutes.HandleFunc("", carePlanHandler.ListCarePlansHandler).Methods("GET")
	carePlanRoutes.HandleFunc("/{id}/complete", carePlanHandler.CompleteCarePlanHandler).Methods("POST")
	carePlanRoutes.HandleFunc("/{id}/notes", carePlanHandler.RecentNotesHandler).Methods("GET")

	// Assistant routes
	assistantRoutes := router.PathPrefix("/assistant").Subrouter()
	assistantRoutes.HandleFunc("/message", assistantHandler.SendMessageHandler).Methods("POST")
	assistantRoutes.HandleFunc("/ws", assistantHandler.AssistantWebSocketHandler)
	assistantRoutes.HandleFunc("/transcript", assistantHandler.TranscriptHandler).Methods("GET")
	assistantRoutes.HandleFunc("/transcript", assistantHandler.ClearTranscriptHandler).Methods("DELETE")

	// Notification routes
	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.HandleFunc("", notificationHandler.GetNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/scan", notificationHandler.RunScanHandler).Methods("POST")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("PATCH")
	notificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// Settings routes
	router.HandleFunc("/settings", settingsHandler.GetSettingsHandler).Methods("GET")
	router.HandleFunc("/settings", settingsHandler.SaveSettingsHandler).Methods("PUT")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background due scan
	notifier := jobs.NewRepositionNotifier(notificationService)
	scheduler.StartRepositionCronJobs(notifier, cfg.ScanEveryMins)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
