package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the İETT web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides IETT_LISTEN",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					client, err := cfg.NewClient()
					if err != nil {
						return err
					}

					listen := cfg.Listen
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					log.Info().Str("listen", listen).Msg("Starting web API")

					return SetupServer(listen, client)
				},
			},
		},
	}
}
