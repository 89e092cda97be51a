package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitesync-backend/config"
	"sitesync-backend/events"
	"sitesync-backend/routes"
	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the live event feed and the match digest scheduler",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = utils.GenerateJWTSecret()
		logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	logger.Info("starting sitesync", zap.String("version", version), zap.String("env", cfg.Env))

	shutdownTracer, err := config.InitTracer(ctx, app, version, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := config.ConnectDB(cfg.DatabaseURL, viper.GetBool("debug"))
	if err != nil {
		return err
	}

	opts := services.Options{Logger: logger, CacheTTL: cfg.CatalogCacheTTL}
	if cfg.RedisAddr != "" {
		cache, err := utils.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			// the catalog still works straight from the database
			logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer cache.Close()
			opts.Cache = cache
		}
	}

	hub := events.NewHub(logger, cfg.AllowedOrigins())
	fanout := events.Fanout{hub}
	if cfg.RabbitURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events stay in process", zap.Error(err))
		} else {
			defer amqpPublisher.Close()
			fanout = append(fanout, amqpPublisher)
		}
	}
	opts.Publisher = fanout

	svc := services.New(db, opts)
	if err := migrate(ctx, db, svc, logger); err != nil {
		return err
	}

	var sender services.MessageSender = services.LogSender{Logger: logger}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioPhoneNumber != "" {
		sender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	}
	digest := services.NewMatchDigestService(db, logger, svc, sender, cfg.DigestLookback())
	scheduler, err := digest.StartScheduler(cfg.DigestCron)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	router := routes.SetupRouter(routes.Options{
		Config:   cfg,
		Logger:   logger,
		Services: svc,
		JWT:      utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry()),
		Hub:      hub,
		Limiter:  utils.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst),
	})
	logRoutes(logger, router)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	logger.Info("server is shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}

func logRoutes(logger *zap.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
