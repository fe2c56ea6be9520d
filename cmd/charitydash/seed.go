package main

import (
	"context"
	"fmt"

	"charitydash/internal/auth"
	"charitydash/internal/seed"
	"charitydash/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the data directory with sample partners, events and a login",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "events",
			Usage: "Number of fake events to generate",
			Value: 8,
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Remove previously seeded events first",
		},
		&cli.StringFlag{
			Name:  "username",
			Usage: "Username for login.json",
			Value: "admin",
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Password for login.json, stored as a bcrypt hash",
			EnvVars: []string{"SEED_PASSWORD"},
		},
		&cli.BoolFlag{
			Name:  "force-credential",
			Usage: "Overwrite an existing login.json",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		partnersRepo := store.NewPartnerRepository(logger, cfg.DataDir)
		eventsRepo := store.NewEventRepository(logger, cfg.DataDir)

		logger.Info("Seeding partners...")
		created, err := seed.SeedPartners(ctx, partnersRepo)
		if err != nil {
			return fmt.Errorf("failed to seed partners: %w", err)
		}
		logger.WithField("created", created).Info("Partners seeded successfully")

		logger.Info("Seeding events...")
		created, err = seed.SeedFakeEvents(ctx, eventsRepo, c.Int("events"), c.Bool("reset"))
		if err != nil {
			return fmt.Errorf("failed to seed events: %w", err)
		}
		logger.WithField("created", created).Info("Events seeded successfully")

		password := c.String("password")
		if password == "" {
			logger.Info("No --password given, leaving login.json untouched")
			return nil
		}

		credentials := auth.NewFileCredentialProvider(cfg.DataDir)
		written, err := seed.SeedCredential(credentials, c.String("username"), password, c.Bool("force-credential"))
		if err != nil {
			return fmt.Errorf("failed to seed credential: %w", err)
		}

		if written {
			logger.WithField("path", credentials.Path()).Info("Credential written")
		} else {
			logger.WithField("path", credentials.Path()).Info("Credential file exists, use --force-credential to replace it")
		}

		return nil
	},
}
