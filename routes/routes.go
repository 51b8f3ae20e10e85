package routes

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-management/controllers"
	"hotel-management/metrics"
	"hotel-management/middleware"
)

// Controllers groups what SetupRouter wires.
type Controllers struct {
	Hotels       *controllers.HotelController
	Rooms        *controllers.RoomController
	Guests       *controllers.GuestController
	Reservations *controllers.ReservationController
}

type Options struct {
	CORSOrigins string

	// Comma separated proxy IPs/CIDRs whose X-Forwarded-For is believed.
	// Empty trusts no proxy.
	TrustedProxies   string
	Metrics          *metrics.Metrics
	ReservationLimit middleware.RateLimit
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	origins := splitList(raw)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	// ClientIP feeds the rate limiter, so forwarded headers only count from known proxies.
	if err := r.SetTrustedProxies(splitList(opts.TrustedProxies)); err != nil {
		log.Printf("⚠️  invalid trusted proxies %q, trusting none: %v", opts.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics(opts.Metrics))

	origins := parseCorsOrigins(opts.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	bookingLimit := middleware.NewRateLimiter(opts.ReservationLimit).Middleware()

	api := r.Group("/api")
	{
		hotels := api.Group("/hotels")
		{
			hotels.GET("", ctl.Hotels.ListHotels)
			hotels.POST("", ctl.Hotels.CreateHotel)
			hotels.GET("/:id", ctl.Hotels.GetHotel)
			hotels.PATCH("/:id", ctl.Hotels.UpdateHotel)
			hotels.DELETE("/:id", ctl.Hotels.DeleteHotel)
			hotels.GET("/:id/rooms", ctl.Hotels.GetHotelRooms)
			hotels.GET("/:id/availability", ctl.Hotels.GetAvailability)
			hotels.GET("/:id/reservations", ctl.Reservations.ListHotelReservations)
		}

		rooms := api.Group("/rooms")
		{
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.PATCH("/:id", ctl.Rooms.UpdateRoom)
			rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
		}

		guests := api.Group("/guests")
		{
			guests.POST("", ctl.Guests.CreateGuest)
			guests.GET("/:id", ctl.Guests.GetGuest)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", ctl.Reservations.ListReservations)
			reservations.POST("", bookingLimit, ctl.Reservations.CreateReservation)
			reservations.GET("/:id", ctl.Reservations.GetReservation)
			reservations.POST("/:id/cancel", ctl.Reservations.CancelReservation)
			reservations.POST("/:id/checkout", ctl.Reservations.CheckOutReservation)
		}

		me := api.Group("/me", middleware.RequireUser())
		{
			me.GET("/reservations", ctl.Reservations.ListMyReservations)
			me.POST("/reservations", bookingLimit, ctl.Reservations.CreateMyReservation)
			me.POST("/reservations/:id/cancel", ctl.Reservations.CancelMyReservation)
		}
	}

	return r
}
