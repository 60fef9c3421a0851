package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/nillow/booking-api/internal/config"
	"github.com/nillow/booking-api/internal/email"
	"github.com/nillow/booking-api/internal/handler"
	appointmentHandler "github.com/nillow/booking-api/internal/handler/appointment"
	authHandler "github.com/nillow/booking-api/internal/handler/auth"
	businessHandler "github.com/nillow/booking-api/internal/handler/business"
	catalogHandler "github.com/nillow/booking-api/internal/handler/catalog"
	customerHandler "github.com/nillow/booking-api/internal/handler/customer"
	imageHandler "github.com/nillow/booking-api/internal/handler/image"
	onboardingHandler "github.com/nillow/booking-api/internal/handler/onboarding"
	"github.com/nillow/booking-api/internal/middleware"
	"github.com/nillow/booking-api/internal/repository/postgres"
	"github.com/nillow/booking-api/internal/router"
	appointmentService "github.com/nillow/booking-api/internal/service/appointment"
	authService "github.com/nillow/booking-api/internal/service/auth"
	businessService "github.com/nillow/booking-api/internal/service/business"
	catalogService "github.com/nillow/booking-api/internal/service/catalog"
	customerService "github.com/nillow/booking-api/internal/service/customer"
	eventService "github.com/nillow/booking-api/internal/service/event"
	imageService "github.com/nillow/booking-api/internal/service/image"
	onboardingService "github.com/nillow/booking-api/internal/service/onboarding"
	"github.com/nillow/booking-api/pkg/auth"
	"github.com/nillow/booking-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	m := metrics.NewMetrics("nillow", "api")

	// Repositories
	businessRepo := postgres.NewBusinessRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	serviceTypeRepo := postgres.NewServiceTypeRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	imageRepo := postgres.NewImageRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	eventSvc := eventService.NewService(outboxRepo)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	mailer := email.NewSMTPService(cfg.SMTP)
	codeStore := authService.NewRedisCodeStore(redisClient)
	authSvc := authService.NewService(businessRepo, codeStore, jwtSvc, mailer, m)
	businessSvc := businessService.NewService(businessRepo, categoryRepo, eventSvc)
	catalogSvc := catalogService.NewService(serviceRepo, serviceTypeRepo, eventSvc)
	customerSvc := customerService.NewService(customerRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, serviceRepo, eventSvc, m)
	onboardingSvc := onboardingService.NewService(businessRepo, serviceRepo)
	imageSvc := imageService.NewService(
		&imageService.DiskStore{Dir: cfg.Images.Dir, BaseURL: cfg.Images.BaseURL},
		imageRepo,
		m,
	)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	otpLimiter := middleware.NewRateLimiter(cfg.RateLimit.OTPPerMinute/60, 3)

	h := handler.NewHandler()
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc, otpLimiter.RateLimit()),
		appointmentHandler.NewHandler(appointmentSvc, businessSvc),
		businessHandler.NewHandler(businessSvc),
		catalogHandler.NewHandler(catalogSvc),
		customerHandler.NewHandler(customerSvc),
		imageHandler.NewHandler(imageSvc),
		onboardingHandler.NewHandler(onboardingSvc),
		h,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			TimeoutSeconds: cfg.Server.TimeoutSeconds,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "nillow_api",
		},
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
