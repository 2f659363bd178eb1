package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/config"
	"github.com/mlcinall/mentor-service/internal/api/handler"
	"github.com/mlcinall/mentor-service/internal/api/middleware"
	"github.com/mlcinall/mentor-service/pkg/jwt"
)

// Setup builds the gin engine. limiter may be nil, in which case request
// submission is throttled per process only.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.SlidingWindow, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if err := handler.RegisterValidators(); err != nil {
		logger.Fatal("register validators", zap.Error(err))
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public reads
		mentors := v1.Group("/mentors")
		{
			mentors.GET("", h.Mentor.ListMentors)
			mentors.GET("/telegram/:handle", h.Mentor.GetByTelegram)
			mentors.GET("/:id", h.Mentor.GetMentor)
			mentors.GET("/:id/windows", h.Availability.ListWindows)
			mentors.GET("/:id/callable-times", h.Availability.CallableTimes)
			mentors.GET("/:id/export/availability.xlsx", h.Export.ExportAvailability)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			authorized.POST("/mentors", middleware.RoleAuth(middleware.RoleMentor), h.Mentor.Register)

			// mentor-owned routes: the token must belong to :id
			own := authorized.Group("/mentors/:id")
			own.Use(middleware.RoleAuth(middleware.RoleMentor, middleware.RoleAdmin), middleware.SelfOrAdmin("id"))
			{
				own.PUT("/info", h.Mentor.UpdateInfo)
				own.POST("/sync", h.Mentor.Sync)
				own.POST("/windows", h.Availability.Publish)
				own.GET("/requests/pending", h.Mentor.ListPending)
				own.GET("/requests/count", h.Mentor.CountPending)
				own.POST("/requests/:rid/respond", h.Request.Respond)
				own.POST("/requests/:rid/cancel", h.Request.Cancel)
				own.GET("/export/calls.ics", h.Export.ExportCalls)
			}

			requests := authorized.Group("/requests")
			{
				requests.POST("",
					middleware.RoleAuth(middleware.RoleStudent),
					middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger),
					h.Request.Submit,
				)
				requests.GET("/me", h.Request.ListMine)
				requests.GET("/:id", h.Request.GetRequest)
			}

			favorites := authorized.Group("/favorites")
			{
				favorites.GET("", h.Favorite.ListFavorites)
				favorites.POST("/:mentor_id", h.Favorite.AddFavorite)
				favorites.DELETE("/:mentor_id", h.Favorite.RemoveFavorite)
			}
		}
	}

	return r
}
