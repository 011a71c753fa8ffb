package redis_client

import (
	"context"
	"strconv"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

const queueConnectionTag = "iett"

// Options reads the connection settings from the IETT_REDIS_* environment variables
func Options() (*redis.Options, error) {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["IETT_REDIS_ADDRESS"] != "" {
		address = env["IETT_REDIS_ADDRESS"]
	}

	if env["IETT_REDIS_PASSWORD"] != "" {
		password = env["IETT_REDIS_PASSWORD"]
	}

	if env["IETT_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["IETT_REDIS_DATABASE"])
		if err != nil {
			return nil, err
		}
		database = n
	}

	return &redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	}, nil
}

// Connect sets up Client and QueueConnection, retrying the first ping with exponential backoff
func Connect() error {
	if Client != nil {
		return nil
	}

	options, err := Options()
	if err != nil {
		return err
	}

	return ConnectWithOptions(options, 30*time.Second)
}

func ConnectWithOptions(options *redis.Options, maxWait time.Duration) error {
	client := redis.NewClient(options)

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = maxWait

	ping := func() error {
		return client.Ping(context.Background()).Err()
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("address", options.Addr).Dur("retry_in", wait).Msg("Redis not reachable")
	}

	if err := backoff.RetryNotify(ping, retryBackoff, notify); err != nil {
		client.Close()
		return err
	}

	queueConnection, err := rmq.OpenConnectionWithRedisClient(queueConnectionTag, client, nil)
	if err != nil {
		client.Close()
		return err
	}

	Client = client
	QueueConnection = queueConnection

	log.Info().Str("address", options.Addr).Int("database", options.DB).Msg("Connected to Redis")

	return nil
}
