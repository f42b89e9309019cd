package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"studiobooking/internal/api"
	"studiobooking/internal/auth"
	"studiobooking/internal/db"
	"studiobooking/internal/repository"
	"studiobooking/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(database)
	groupRepo := repository.NewGroupRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)
	operatorRepo := repository.NewOperatorAuthRepository(database)

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(bookingRepo)
	groupSvc := service.NewGroupService(groupRepo, bookingRepo)
	scheduleSvc := service.NewScheduleService(scheduleRepo)
	materializer := service.NewMaterializerService(scheduleRepo, bookingRepo, sender)
	operatorAuthSvc := service.NewOperatorAuthService(operatorRepo)

	bookingHandler := api.NewBookingHandler(bookingSvc)
	groupHandler := api.NewGroupHandler(groupSvc, sender)
	scheduleHandler := api.NewScheduleHandler(scheduleSvc)
	operatorAuthHandler := api.NewOperatorAuthHandler(operatorAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.UpdateBooking).Methods("PUT")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.DeleteBooking).Methods("DELETE")
	r.HandleFunc("/api/groups", groupHandler.CreateGroup).Methods("POST")
	r.HandleFunc("/api/groups", groupHandler.ListGroups).Methods("GET")
	r.HandleFunc("/api/groups/{id}/bookings", groupHandler.GetMembers).Methods("GET")
	r.HandleFunc("/api/groups/{id}/times", groupHandler.UpdateGroupTimes).Methods("PUT")
	r.HandleFunc("/api/groups/{id}/bookings/{bookingId}", groupHandler.DeleteMember).Methods("DELETE")
	r.HandleFunc("/api/groups/{id}", groupHandler.DeleteGroup).Methods("DELETE")
	r.HandleFunc("/api/operator/login", operatorAuthHandler.Login).Methods("POST")

	// Operator endpoints (protected)
	operator := r.PathPrefix("/operator").Subrouter()
	operator.Use(auth.OperatorAuthMiddleware)
	operator.HandleFunc("/register", operatorAuthHandler.Register).Methods("POST")
	operator.HandleFunc("/schedules", scheduleHandler.CreateSchedule).Methods("POST")
	operator.HandleFunc("/schedules", scheduleHandler.ListSchedules).Methods("GET")
	operator.HandleFunc("/schedules/{id}", scheduleHandler.UpdateSchedule).Methods("PUT")
	operator.HandleFunc("/schedules/{id}/active", scheduleHandler.SetActive).Methods("PUT")
	operator.HandleFunc("/schedules/{id}", scheduleHandler.DeleteSchedule).Methods("DELETE")

	// Daily materialization at midnight, mirroring the schedule semantics:
	// at most one booking per active schedule per qualifying day.
	c := cron.New()
	if _, err := c.AddFunc("0 0 * * *", func() {
		if err := materializer.Run(); err != nil {
			log.Printf("Materializer run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule materializer: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(r)))
}
