package main

import (
	"context"
	"fmt"
	"os"

	"charitydash/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "Pretty-print a collection from the data directory",
	ArgsUsage: "events|partners|stats",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		eventsRepo := store.NewEventRepository(logger, cfg.DataDir)
		partnersRepo := store.NewPartnerRepository(logger, cfg.DataDir)

		printer := pp.New()
		printer.SetOutput(os.Stdout)
		printer.SetColoringEnabled(c.Bool("color"))

		switch c.Args().First() {
		case "events", "":
			printer.Println(eventsRepo.Events(ctx))
		case "partners":
			printer.Println(partnersRepo.Partners(ctx))
		case "stats":
			printer.Println(store.NewStatsService(eventsRepo, partnersRepo).Statistics(ctx))
		default:
			return fmt.Errorf("unknown collection %q", c.Args().First())
		}

		return nil
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "color",
			Usage: "Colorize output",
			Value: true,
		},
	},
}
