package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"hotel-tracker/controllers"
	"hotel-tracker/middleware"
	"hotel-tracker/services"
)

// Options tune the router around the fixed route table.
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(manager *services.HotelManager, opts Options) (*gin.Engine, error) {
	if err := controllers.RegisterValidators(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(middleware.Logger(log), middleware.Metrics())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rc := controllers.NewRoomController(manager)
	resc := controllers.NewReservationController(manager)

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", rc.CreateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", resc.GetReservations)
			// static segment, registered alongside /:id
			reservations.GET("/next-id", resc.NextReservationID)
			reservations.GET("/:id", resc.GetReservation)
			reservations.POST("", resc.CreateReservation)
			reservations.DELETE("/:id", resc.CancelReservation)
		}

		api.GET("/stats", resc.GetStats)
	}

	return r, nil
}
