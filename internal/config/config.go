package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers    []string
	KafkaJobTopic   string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DispatchTimeout bounds a single job publish to the worker topic.
	DispatchTimeout time.Duration

	// CatalogOverridePath is an optional YAML file merged over the embedded catalog.
	CatalogOverridePath string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	dispatchTimeoutStr := sharedcfg.EnvOrDefault("DISPATCH_TIMEOUT", "10s")
	dispatchTimeout, err := time.ParseDuration(dispatchTimeoutStr)
	if err != nil || dispatchTimeout <= 0 {
		return nil, errors.New("invalid DISPATCH_TIMEOUT")
	}

	cfg := &Config{
		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaJobTopic:       sharedcfg.EnvOrDefault("KAFKA_JOB_TOPIC", "clim-plot-jobs"),
		HTTPAddr:            sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:     shutdownTimeout,
		DispatchTimeout:     dispatchTimeout,
		CatalogOverridePath: os.Getenv("CATALOG_OVERRIDE_PATH"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaJobTopic == "" {
		return nil, errors.New("KAFKA_JOB_TOPIC is required")
	}
	if cfg.CatalogOverridePath != "" {
		if _, err := os.Stat(cfg.CatalogOverridePath); err != nil {
			return nil, errors.New("CATALOG_OVERRIDE_PATH does not point to a readable file")
		}
	}

	return cfg, nil
}
