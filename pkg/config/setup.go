package config

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/cachedresults"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/redis_client"
	"github.com/travigo/iett/pkg/soap"
)

// ResponseCache creates the cache backend selected by Cache. The redis backend connects to Redis.
func (c *Config) ResponseCache() (cachedresults.ResponseCache, error) {
	switch c.Cache {
	case CacheNone:
		return cachedresults.Noop{}, nil
	case CacheRedis:
		if err := redis_client.Connect(); err != nil {
			return nil, err
		}

		return cachedresults.NewRedis(redis_client.Client, c.StaleFor.Duration()), nil
	default:
		return cachedresults.NewMemory(c.StaleFor.Duration()), nil
	}
}

// NewClient wires an İETT client through a SOAP invoker and the configured cache
func (c *Config) NewClient() (*iett.Client, error) {
	responseCache, err := c.ResponseCache()
	if err != nil {
		return nil, err
	}

	invoker := soap.NewInvoker(responseCache)
	invoker.Namespace = c.Namespace
	invoker.UserAgent = c.UserAgent

	client := iett.NewClient(invoker)
	client.Endpoints = c.Endpoints
	client.Freshness = c.IETTFreshness()
	client.Timeout = c.Timeout.Duration()

	log.Info().
		Str("cache", string(c.Cache)).
		Dur("timeout", client.Timeout).
		Msg("Configured İETT client")

	return client, nil
}
