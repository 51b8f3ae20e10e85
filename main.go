package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-management/config"
	"hotel-management/controllers"
	"hotel-management/metrics"
	"hotel-management/middleware"
	"hotel-management/routes"
	"hotel-management/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}
	cfg := config.FromEnv()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Printf("✅ Database (%s) connected and migrated.", cfg.DBDriver)

	m := metrics.New("hotel")
	if !cfg.Mail.Configured() {
		log.Println("⚠️  SMTP not configured; confirmation emails will only be logged")
	}

	// Initialize services
	hotelService := services.NewHotelService(db)
	roomService := services.NewRoomService(db)
	guestService := services.NewGuestService(db)
	availabilityService := services.NewAvailabilityService(db, m)
	reservationService := services.NewReservationService(db, m,
		services.NewEmailNotifier(cfg.Mail, cfg.FrontendURL))

	router := routes.SetupRouter(routes.Controllers{
		Hotels:       controllers.NewHotelController(hotelService, availabilityService),
		Rooms:        controllers.NewRoomController(roomService),
		Guests:       controllers.NewGuestController(guestService),
		Reservations: controllers.NewReservationController(reservationService, guestService),
	}, routes.Options{
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Metrics:        m,
		ReservationLimit: middleware.RateLimit{
			RequestsPerMinute: float64(cfg.ReservationRatePerMinute),
			Burst:             cfg.ReservationRateBurst,
		},
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("✅ Server stopped gracefully")
}
