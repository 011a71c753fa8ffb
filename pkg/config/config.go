package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/soap"
	"github.com/travigo/iett/pkg/util"
	"gopkg.in/yaml.v3"
)

type CacheBackend string

const (
	CacheMemory CacheBackend = "memory"
	CacheRedis  CacheBackend = "redis"
	CacheNone   CacheBackend = "none"
)

type FreshnessConfig struct {
	AllLines         Duration `yaml:"all_lines"`
	Line             Duration `yaml:"line"`
	Stop             Duration `yaml:"stop"`
	Garage           Duration `yaml:"garage"`
	Schedule         Duration `yaml:"schedule"`
	Announcements    Duration `yaml:"announcements"`
	VehicleLocations Duration `yaml:"vehicle_locations"`
	RouteStops       Duration `yaml:"route_stops"`
}

type Config struct {
	Endpoints iett.Endpoints  `yaml:"endpoints"`
	Namespace string          `yaml:"namespace"`
	Timeout   Duration        `yaml:"timeout"`
	StaleFor  Duration        `yaml:"stale_for"`
	Freshness FreshnessConfig `yaml:"freshness"`
	Cache     CacheBackend    `yaml:"cache"`
	Listen    string          `yaml:"listen"`
	UserAgent string          `yaml:"user_agent"`
}

func Default() *Config {
	freshness := iett.DefaultFreshness()

	return &Config{
		Endpoints: iett.DefaultEndpoints(),
		Namespace: soap.DefaultNamespace,
		Timeout:   Duration(soap.DefaultTimeout),
		StaleFor:  Duration(time.Hour),
		Freshness: FreshnessConfig{
			AllLines:         Duration(freshness.AllLines),
			Line:             Duration(freshness.Line),
			Stop:             Duration(freshness.Stop),
			Garage:           Duration(freshness.Garage),
			Schedule:         Duration(freshness.Schedule),
			Announcements:    Duration(freshness.Announcements),
			VehicleLocations: Duration(freshness.VehicleLocations),
			RouteStops:       Duration(freshness.RouteStops),
		},
		Cache:     CacheMemory,
		Listen:    ":8080",
		UserAgent: "iett-gateway/1.0",
	}
}

// Load builds the configuration from the defaults, then the YAML file named by IETT_CONFIG,
// then the IETT_* environment variables. A .env file in the working directory is loaded first.
func Load() (*Config, error) {
	if err := util.LoadEnvironmentFiles(); err != nil {
		return nil, err
	}

	env := util.GetEnvironmentVariables()
	config := Default()

	if path := env["IETT_CONFIG"]; path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := config.decodeYAML(contents); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := config.applyEnvironment(env); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) decodeYAML(contents []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)

	err := decoder.Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	durations := map[string]*Duration{
		"IETT_TIMEOUT":   &c.Timeout,
		"IETT_STALE_FOR": &c.StaleFor,
	}
	for name, target := range durations {
		if env[name] == "" {
			continue
		}

		value, err := ParseDuration(env[name])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*target = Duration(value)
	}

	if env["IETT_CACHE"] != "" {
		c.Cache = CacheBackend(strings.ToLower(env["IETT_CACHE"]))
	}
	if env["IETT_LISTEN"] != "" {
		c.Listen = env["IETT_LISTEN"]
	}
	if env["IETT_NAMESPACE"] != "" {
		c.Namespace = env["IETT_NAMESPACE"]
	}
	if env["IETT_USER_AGENT"] != "" {
		c.UserAgent = env["IETT_USER_AGENT"]
	}

	return nil
}

func (c *Config) Validate() error {
	switch c.Cache {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout.Duration())
	}

	return nil
}

func (c *Config) IETTFreshness() iett.Freshness {
	return iett.Freshness{
		AllLines:         c.Freshness.AllLines.Duration(),
		Line:             c.Freshness.Line.Duration(),
		Stop:             c.Freshness.Stop.Duration(),
		Garage:           c.Freshness.Garage.Duration(),
		Schedule:         c.Freshness.Schedule.Duration(),
		Announcements:    c.Freshness.Announcements.Duration(),
		VehicleLocations: c.Freshness.VehicleLocations.Duration(),
		RouteStops:       c.Freshness.RouteStops.Duration(),
	}
}
