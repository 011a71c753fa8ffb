package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/api"
	"github.com/travigo/iett/pkg/lookup"
	"github.com/travigo/iett/pkg/util"
	"github.com/travigo/iett/pkg/warmer"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// Schedules and vehicle timestamps are in Istanbul time
	loc, _ := time.LoadLocation("Europe/Istanbul")
	time.Local = loc

	if err := util.LoadEnvironmentFiles(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env file")
	}

	if os.Getenv("IETT_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("IETT_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "iett",
		Description: "Gateway to the İETT transit data services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			warmer.RegisterCLI(),
			lookup.RegisterCLI(),
			lookup.RegisterExportCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
