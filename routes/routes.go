package routes

import (
	"net/http"
	"time"

	"beu/config"
	"beu/handlers"
	"beu/middleware"
	"beu/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCalendarRoutes registers the week strip, month grid and feed endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/week-strip", hb.Calendar.WeekStripHandler)
		api.POST("/week-strip/select", hb.Calendar.SelectDayHandler)
		api.GET("/month", hb.Calendar.MonthGridHandler)
		api.POST("/month/tap", hb.Calendar.TapMonthHandler)
		api.GET("/connection", hb.Calendar.ConnectionHandler)
		api.POST("/feed-url", hb.Calendar.FeedLinkHandler)
	}

	// Subscribed to by calendar apps, which cannot send a bearer token.
	r.GET("/calendar/:token/reservations.ics", hb.Calendar.FeedHandler)
}

// RegisterNotificationRoutes registers notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Notifications.ListHandler)
		api.GET("/unread-count", hb.Notifications.UnreadCountHandler)
		api.POST("/:id/read", hb.Notifications.MarkReadHandler)
		api.POST("/:id/unread", hb.Notifications.MarkUnreadHandler)
		api.DELETE("/:id", hb.Notifications.DeleteHandler)
	}
}

// RegisterScheduleRoutes registers the availability editor endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/drafts", hb.Schedule.CreateDraftHandler)
		api.GET("/drafts/:id", hb.Schedule.GetDraftHandler)
		api.PATCH("/drafts/:id", hb.Schedule.PatchDraftHandler)
		api.POST("/drafts/:id/save", hb.Schedule.SaveDraftHandler)
		api.POST("/validate", hb.Schedule.ValidateHandler)
	}
}

// RegisterReservationRoutes registers reservation endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Reservations.ListHandler)
		api.POST("", hb.Reservations.CreateHandler)
		api.GET("/:id", hb.Reservations.GetHandler)
		api.POST("/:id/confirm", hb.Reservations.ConfirmHandler)
		api.POST("/:id/reject", hb.Reservations.RejectHandler)
	}
}

// RegisterPostRoutes registers post endpoints.
func RegisterPostRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/posts")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Posts.ListHandler)
		api.POST("", hb.Posts.CreateHandler)
		api.GET("/:id", hb.Posts.GetHandler)
		api.POST("/:id/like", hb.Posts.LikeHandler)
		api.DELETE("/:id/like", hb.Posts.UnlikeHandler)
		api.GET("/:id/comments", hb.Posts.CommentsHandler)
		api.POST("/:id/comments", hb.Posts.CommentHandler)
	}
}

// RegisterProfileRoutes registers profile and service catalogue endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	authed := r.Group("/api")
	{
		authed.Use(middleware.JWTAuthMiddleware())
		authed.GET("/profiles/:id", hb.Profiles.PublicProfileHandler)
		authed.GET("/profiles/:id/services", hb.Profiles.ServicesHandler)
		authed.POST("/services", hb.Profiles.CreateServiceHandler)
		authed.PATCH("/services/:id", hb.Profiles.UpdateServiceHandler)
		authed.GET("/custom-services", hb.Profiles.CustomServicesHandler)
		authed.POST("/custom-services", hb.Profiles.CreateCustomServiceHandler)
		authed.PATCH("/custom-services/:id", hb.Profiles.UpdateCustomServiceHandler)
	}
}

// RegisterHealthRoute registers the health check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm BE-U"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterCalendarRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterPostRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterHealthRoute(r)
}
