package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/secondwear/internal/buildinfo"
	"github.com/dmitrijs2005/secondwear/internal/client/cli"
	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/config"
	"github.com/dmitrijs2005/secondwear/internal/client/credentials"
	"github.com/dmitrijs2005/secondwear/internal/client/repositories/history"
	"github.com/dmitrijs2005/secondwear/internal/client/services"
	"github.com/dmitrijs2005/secondwear/internal/client/session"
	"github.com/dmitrijs2005/secondwear/internal/client/storage"
	"github.com/dmitrijs2005/secondwear/internal/filex"
	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/joho/godotenv"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	path, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return err
	}
	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()

	sess := session.New(credentials.NewSQLiteStore(db), logger)
	if err := sess.Restore(ctx); err != nil {
		logger.Warn(ctx, "could not restore session", "error", err)
	}

	gw := client.NewHTTPClient(cfg.APIBaseURL, sess, logger,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)

	var uploader storage.ImageUploader
	if cfg.ImageBucket != "" {
		s3, err := storage.NewS3Uploader(ctx, storage.S3Options{
			Bucket:        cfg.ImageBucket,
			Region:        cfg.ImageRegion,
			Endpoint:      cfg.ImageEndpoint,
			PublicBaseURL: cfg.ImagePublicBaseURL,
			AccessKey:     cfg.ImageAccessKey,
			SecretKey:     cfg.ImageSecretKey,
		})
		if err != nil {
			return err
		}
		uploader = s3
	}

	prefs := services.NewPreferencesService(db, logger)
	if _, err := prefs.Load(ctx); err != nil {
		logger.Warn(ctx, "could not load preferences", "error", err)
	}

	listing := services.NewListingService(gw, logger)
	app, err := cli.NewApp(cli.Deps{
		Session:     sess,
		Auth:        services.NewAuthService(gw, sess, logger),
		Listing:     listing,
		History:     services.NewHistory(listing, history.NewSQLiteRepository(db), logger),
		Items:       services.NewItemService(gw, uploader, logger),
		Messages:    services.NewMessageService(gw, logger),
		Orders:      services.NewOrderService(gw, logger),
		Profiles:    services.NewProfileService(gw, sess),
		Preferences: prefs,
		Log:         logger,
	})
	if err != nil {
		return err
	}

	app.Run(ctx)
	return nil
}
