package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Sim     SimConfig
	Traffic TrafficConfig
	Redis   RedisConfig
}

// ServerConfig also carries the token bucket applied to manual ticks.
type ServerConfig struct {
	Port           string
	TickRatePerSec float64
	TickBurst      int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogDir      string
	Version     string
}

// SimConfig may override the destination pools; empty lists keep the
// registry defaults.
type SimConfig struct {
	Seed                      int64
	FlightCount               int
	RefreshInterval           time.Duration
	RefreshEnabled            bool
	DomesticDestinations      []string
	InternationalDestinations []string
}

type TrafficConfig struct {
	Start               time.Time
	ProjectionHorizon   int
	GrowthMin           float64
	GrowthMax           float64
	BaselineUtilization float64
}

// RedisConfig is optional: an empty Addr disables tick notifications.
type RedisConfig struct {
	Addr    string
	Channel string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "4000"),
			TickRatePerSec: getEnvAsFloat("TICK_RATE_PER_SEC", 1),
			TickBurst:      getEnvAsInt("TICK_BURST", 5),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogDir:      getEnv("LOG_DIR", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Sim: SimConfig{
			Seed:            int64(getEnvAsInt("SIM_SEED", 0)),
			FlightCount:     getEnvAsInt("FLIGHT_COUNT", 200),
			RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 30*time.Second),
			RefreshEnabled:  getEnvAsBool("REFRESH_ENABLED", true),

			DomesticDestinations:      getEnvAsList("DOMESTIC_DESTINATIONS"),
			InternationalDestinations: getEnvAsList("INTERNATIONAL_DESTINATIONS"),
		},
		Traffic: TrafficConfig{
			Start:               getEnvAsDate("TRAFFIC_START", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
			ProjectionHorizon:   getEnvAsInt("PROJECTION_HORIZON", 12),
			GrowthMin:           getEnvAsFloat("GROWTH_MIN", 0.02),
			GrowthMax:           getEnvAsFloat("GROWTH_MAX", 0.05),
			BaselineUtilization: getEnvAsFloat("BASELINE_UTILIZATION", 0.7),
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", ""),
			Channel: getEnv("REDIS_CHANNEL", "airport:ticks"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.TickRatePerSec <= 0 || c.Server.TickBurst <= 0 {
		return fmt.Errorf("TICK_RATE_PER_SEC and TICK_BURST must be positive")
	}
	if c.Sim.FlightCount <= 0 {
		return fmt.Errorf("FLIGHT_COUNT must be positive, got %d", c.Sim.FlightCount)
	}
	if c.Sim.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", c.Sim.RefreshInterval)
	}
	if c.Traffic.ProjectionHorizon <= 0 {
		return fmt.Errorf("PROJECTION_HORIZON must be positive, got %d", c.Traffic.ProjectionHorizon)
	}
	if c.Traffic.GrowthMax < c.Traffic.GrowthMin {
		return fmt.Errorf("GROWTH_MAX %v is below GROWTH_MIN %v", c.Traffic.GrowthMax, c.Traffic.GrowthMin)
	}
	if c.Traffic.BaselineUtilization <= 0 {
		return fmt.Errorf("BASELINE_UTILIZATION must be positive, got %v", c.Traffic.BaselineUtilization)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDate(key string, defaultValue time.Time) time.Time {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.Parse(time.DateOnly, valueStr)
	if err != nil {
		log.Printf("Warning: Invalid date for %s, using default: %s", key, defaultValue.Format(time.DateOnly))
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
