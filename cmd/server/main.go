package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventpro/config"
	authadapter "eventpro/internal/adapters/auth"
	emailadapter "eventpro/internal/adapters/email"
	httpdelivery "eventpro/internal/delivery/http"
	"eventpro/internal/delivery/http/controllers"
	"eventpro/internal/delivery/http/middleware"
	"eventpro/internal/repository/postgres"
	"eventpro/internal/services"
)

const (
	bcryptCost     = 10
	serviceTimeout = 10 * time.Second
)

// @title EventPro API
// @version 1.0
// @description Event listing and creation API with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)

	hasher := authadapter.NewBcryptHasher(bcryptCost)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	eventService := services.NewEventService(eventRepo, emailService, logger, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventService, cfg.FallbackImageURL)
	authController := controllers.NewAuthController(logger, authService)

	mux := httpdelivery.NewRouter(eventController, authController, tokenVerifier)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
