package warmer

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/config"
	"github.com/travigo/iett/pkg/consumer"
	"github.com/travigo/iett/pkg/dataaggregator"
	"github.com/travigo/iett/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "warmer",
		Usage: "Loads route details into the shared response cache ahead of requests",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "consume warm requests from the queue",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "consumers",
						Value: 2,
						Usage: "number of queue consumers",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the queue stats server, empty to disable",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if cfg.Cache != config.CacheRedis {
						log.Warn().Str("cache", string(cfg.Cache)).Msg("Warmer is not using the redis cache, warmed responses stay in this process")
					}

					if err := redis_client.Connect(); err != nil {
						return err
					}

					client, err := cfg.NewClient()
					if err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: c.Int("consumers"),
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(dataaggregator.NewAggregator(client)),
						StatsListen:     c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:      "enqueue",
				Usage:     "queue lines for warming",
				ArgsUsage: "[hatKodu...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "queue every line known to İETT",
					},
				},
				Action: func(c *cli.Context) error {
					hatKodlari := c.Args().Slice()

					if c.Bool("all") {
						cfg, err := config.Load()
						if err != nil {
							return err
						}
						client, err := cfg.NewClient()
						if err != nil {
							return err
						}

						hatlar, err := client.GetHat(c.Context, "")
						if err != nil {
							return err
						}
						for _, hat := range hatlar {
							hatKodlari = append(hatKodlari, hat.Code)
						}
					}

					if len(hatKodlari) == 0 {
						return errors.New("no line codes given, pass codes or --all")
					}

					if err := redis_client.Connect(); err != nil {
						return err
					}

					queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
					if err != nil {
						return err
					}

					published, err := Enqueue(queue, hatKodlari)
					if err != nil {
						return err
					}

					log.Info().Int("lines", published).Msg("Queued lines for warming")

					return nil
				},
			},
		},
	}
}
