package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charitydash/internal/auth"
	"charitydash/internal/server"
	"charitydash/internal/storage"
	"charitydash/internal/store"
	"charitydash/internal/upload"
	"charitydash/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	logger := newLogger(config)

	uploadStorage, err := newUploadStorage(ctx, config)
	if err != nil {
		return err
	}

	eventsRepo := store.NewEventRepository(logger, config.DataDir)
	partnersRepo := store.NewPartnerRepository(logger, config.DataDir)
	statsService := store.NewStatsService(eventsRepo, partnersRepo)

	credentials := auth.NewFileCredentialProvider(config.DataDir)
	verifier := auth.NewVerifier(logger, credentials)

	sessions, err := server.NewSessionManager(config, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(
		config,
		logger,
		sessions,
		verifier,
		eventsRepo,
		partnersRepo,
		statsService,
		upload.NewHandler(logger, uploadStorage, upload.DefaultConstraints()),
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func newUploadStorage(ctx context.Context, config *types.Config) (storage.Storage, error) {
	if config.UploadBackend != types.UploadBackendS3 {
		return storage.NewLocalStorage(config.UploadDir, config.UploadURLPrefix)
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	return storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3BucketName, "uploads/events", config.S3PublicBaseURL), nil
}
