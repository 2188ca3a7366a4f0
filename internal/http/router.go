package api

import (
	"log"
	stdhttp "net/http"

	intconfig "railbook/internal/config"
	h "railbook/internal/http/handlers"
	"railbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.JWTSecret = []byte(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		trains := api.Group("/trains")
		trains.GET("", h.SearchTrains)
		trains.GET("/:no", h.GetTrain)

		bookings := api.Group("/bookings")
		bookings.GET("/:pnr", h.GetBookingStatus)
		bookings.GET("/:pnr/e-ticket", h.GetBookingETicket)

		secured := bookings.Group("")
		secured.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
		secured.POST("", h.CreateBooking)
		secured.DELETE("/:pnr", h.CancelBooking)
	}

	return r
}
