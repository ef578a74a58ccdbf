package main

import (
	"context"
	"drive-upload-backend/internal/auth"
	"drive-upload-backend/internal/config"
	"drive-upload-backend/internal/logging"
	"drive-upload-backend/internal/middleware"
	"drive-upload-backend/internal/providers/googledrive"
	"drive-upload-backend/internal/providers/mattermost"
	"drive-upload-backend/internal/upload"
	"drive-upload-backend/pkg/models"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load("../.env")
	if err != nil {
		// Logger isn't configured yet
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogJSON)

	e := echo.New()
	e.HideBanner = true
	initialize(e, cfg, log)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Starting Drive upload server")
	if err := http.ListenAndServe(":"+cfg.Port, e); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func initialize(e *echo.Echo, cfg *config.Config, log zerolog.Logger) {
	// Middleware
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.SecurityHeaders(cfg.Domain))

	// Initialize provider services
	googleDriveService := googledrive.NewGoogleDriveService(cfg.DriveUploadURL, cfg.DriveTokenURL, cfg.HTTPTimeout)
	mattermostHTTPClient := mattermost.NewHTTPClient(cfg.HTTPTimeout)

	// Initialize auth service with the Drive oauth2 config
	authService := auth.NewService(googleDriveService, cfg.HTTPTimeout)

	uploadService := upload.NewService(upload.Options{
		AbortOnFailure: cfg.AbortOnFailure(),
		Concurrency:    cfg.UploadConcurrency,
		ItemTimeout:    cfg.ItemTimeout,
		ProductLabel:   cfg.ProductLabel,
	})
	uploadHandler := upload.NewHandler(uploadService,
		func(siteURL, accessToken string) upload.MessageStore {
			return mattermost.NewClient(mattermostHTTPClient, siteURL, accessToken)
		},
		func(ctx context.Context, callCtx *models.Context) (upload.DriveUploader, error) {
			ts, err := authService.DriveTokenSource(ctx, callCtx)
			if err != nil {
				return nil, err
			}
			return googleDriveService.ForTokenSource(ctx, ts), nil
		},
	)
	uploadHandler.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
