package routes

import (
	"net/http"
	"time"

	"handyhelp/handlers"
	"handyhelp/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options are the route-level settings taken from configuration.
type Options struct {
	EnforceAuth bool
	AdminToken  string
	BodyLimitMB int64
}

// RegisterIdentityRoutes registers registration, login and the public profile listing.
func RegisterIdentityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/register", hb.RegisterUserHandler)
	r.POST("/login-user", hb.AuthenticateUserHandler)
	r.POST("/register-handyman", hb.RegisterHandymanHandler)
	r.POST("/login-handyman", hb.AuthenticateHandymanHandler)
	r.GET("/profiles", hb.ListProfilesHandler)
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.GET("/requested-profiles", hb.RequestedProfilesHandler)
	r.GET("/api/bookings/:bookingId", hb.GetBookingHandler)

	protected := r.Group("")
	protected.Use(middleware.RequireAuth(opts.EnforceAuth))
	{
		protected.POST("/api/bookings", hb.CreateBookingHandler)
		protected.POST("/accept-booking", hb.AcceptBookingHandler)
		protected.POST("/decline-booking", hb.DeclineBookingHandler)
	}
}

// RegisterMessagingRoutes registers inbox, conversation and send endpoints for both parties.
func RegisterMessagingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	api := r.Group("/api")
	{
		api.GET("/messages", hb.HandymanInboxHandler)
		api.GET("/user-messages", hb.UserInboxHandler)
		api.GET("/conversation/:bookingId", hb.HandymanConversationHandler)
		api.GET("/user-conversation/:bookingId", hb.UserConversationHandler)
		api.GET("/notifications/:userId", hb.ListNotificationsHandler)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(opts.EnforceAuth))
		protected.POST("/send-message", hb.HandymanSendMessageHandler)
		protected.POST("/send-message-user", hb.UserSendMessageHandler)
	}
}

// RegisterHealthRoute registers the root greeting and the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/", handlers.RootHandler)
	r.GET("/health", handlers.HealthHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(middleware.AdminTokenMiddleware(opts.AdminToken))
		adminGroup.PATCH("/handymen/:id/status", hb.AdminHandler.SetHandymanStatusHandler)
		adminGroup.PATCH("/users/:id/status", hb.AdminHandler.SetUserStatusHandler)
	}
}

// bodyLimit caps request bodies at the configured size.
func bodyLimit(mb int64) gin.HandlerFunc {
	limit := mb << 20
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(bodyLimit(opts.BodyLimitMB))
	r.Use(middleware.AuthContext())

	RegisterHealthRoute(r)
	RegisterIdentityRoutes(r, hb)
	RegisterBookingRoutes(r, hb, opts)
	RegisterMessagingRoutes(r, hb, opts)
	RegisterAdminRoutes(r, hb, opts)
}
