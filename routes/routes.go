package routes

import (
	"net/http"
	"time"

	"sitesync-backend/config"
	"sitesync-backend/controllers"
	"sitesync-backend/events"
	"sitesync-backend/models"
	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Services *services.Services
	JWT      *utils.JWTManager
	Hub      *events.Hub
	// Limiter is optional; nil disables rate limiting.
	Limiter *utils.RateLimiter
}

func SetupRouter(opts Options) *gin.Engine {
	if opts.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	origins := opts.Config.AllowedOrigins()
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || origins[0] == "*" {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = origins
	}
	r.Use(cors.New(corsConfig))

	r.Use(utils.ErrorHandler(opts.Logger))
	r.Use(config.PerformanceLogger(opts.Logger))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware(opts.Logger))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	svc := opts.Services
	authController := &controllers.AuthController{
		Users:  svc.Users,
		JWT:    opts.JWT,
		Logger: opts.Logger,
		MaxAge: int(opts.Config.JWTExpiry().Seconds()),
		Secure: opts.Config.IsProduction(),
	}
	catalogController := &controllers.CatalogController{Catalog: svc.Catalog, Logger: opts.Logger}
	contractorController := &controllers.ContractorController{Services: svc, Logger: opts.Logger}
	homeownerController := &controllers.HomeownerController{Services: svc, Logger: opts.Logger}
	searchController := &controllers.SearchController{Matching: svc.Matching, Invites: svc.Invites, Logger: opts.Logger}
	eventsController := &controllers.EventsController{Hub: opts.Hub, Logger: opts.Logger}
	dashboardController := &controllers.DashboardController{Dashboard: svc.Dashboard, Logger: opts.Logger}

	authMiddleware := opts.JWT.AuthMiddleware()

	auth := r.Group("/auth")
	{
		auth.POST("/homeowner/signup", authController.SignupHomeowner)
		auth.POST("/contractor/signup", authController.SignupContractor)
		auth.POST("/token", authController.Token)

		auth.Use(authMiddleware)
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/quiz", catalogController.Quiz)
		api.GET("/professions", catalogController.Professions)
		api.POST("/search", searchController.Search)
		api.GET("/booking/:bid/invite/:cid", searchController.InviteState)
		api.GET("/contractors/:cid/public", contractorController.PublicProfile)
		api.GET("/contractors/:cid/preferences", contractorController.Preferences)
		api.GET("/events/ws", eventsController.Stream)
		api.GET("/dashboard", dashboardController.Overview)

		contractor := api.Group("/contractor", utils.RequireRole(models.RoleContractor))
		{
			contractor.POST("/preferences", contractorController.ReplacePreferences)
			contractor.GET("/invites", contractorController.Invites)
			contractor.GET("/bookings", contractorController.Bookings)
			contractor.GET("/booking/:bid/info", contractorController.BookingInfo)
			contractor.POST("/booking/:bid/accept", contractorController.AcceptInvite)
			contractor.POST("/booking/:bid/reject", contractorController.RejectInvite)
			contractor.POST("/booking/:bid/quote", contractorController.SubmitQuote)
			contractor.GET("/booking/:bid/quote", contractorController.Quote)
			contractor.GET("/projects", contractorController.Projects)
			contractor.POST("/project/:bid/complete", contractorController.SignalCompletion)
		}

		homeowner := api.Group("/homeowner", utils.RequireRole(models.RoleHomeowner))
		{
			homeowner.POST("/booking", homeownerController.CreateBooking)
			homeowner.GET("/bookings", homeownerController.Bookings)
			homeowner.GET("/bookings/:cid/list", homeownerController.ContractorBookings)
			homeowner.POST("/booking/invite", homeownerController.Invite)
			homeowner.GET("/booking/:bid/info", homeownerController.BookingInfo)
			homeowner.GET("/booking/:bid/search", homeownerController.BookingContractors)
			homeowner.GET("/booking/:bid/quote/:cid", homeownerController.Quote)
			homeowner.POST("/booking/:bid/quote/:cid/accept", homeownerController.AcceptQuote)
			homeowner.GET("/projects", homeownerController.Projects)
			homeowner.POST("/project/:bid/complete/accept", homeownerController.AcceptCompletion)
			homeowner.POST("/project/:bid/complete/reject", homeownerController.RejectCompletion)
		}
	}

	return r
}
