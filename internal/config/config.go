package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/nvdata-service/internal/observability"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AinevaURL       string
	ArpavURL        string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	UpstreamTimeout time.Duration

	// Region data on disk.
	RegionsDir            string
	RegionsLang           string
	RegionsReloadInterval time.Duration

	// Snapshot publishing to Kafka.
	KafkaBrokers    []string
	KafkaTopic      string
	PublishEnabled  bool
	PublishInterval time.Duration

	// OpenTelemetry tracing. Tracing.Exporter is empty when disabled.
	Tracing observability.TracingConfig
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration("UPSTREAM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	reloadInterval, err := parseDuration("REGIONS_RELOAD_INTERVAL", "0")
	if err != nil {
		return nil, err
	}

	publishInterval, err := parsePositiveDuration("PUBLISH_INTERVAL", "30m")
	if err != nil {
		return nil, err
	}

	tracing, err := parseTracing()
	if err != nil {
		return nil, err
	}

	brokers := sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	publishEnabled := len(brokers) > 0
	if v := os.Getenv("PUBLISH_ENABLED"); v != "" {
		publishEnabled = v == "true"
	}

	cfg := &Config{
		AinevaURL:       os.Getenv("AINEVA_URL"),
		ArpavURL:        os.Getenv("ARPAV_URL"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		UpstreamTimeout: upstreamTimeout,

		RegionsDir:            sharedcfg.EnvOrDefault("REGIONS_DIR", "data/eaws-regions/public"),
		RegionsLang:           sharedcfg.EnvOrDefault("REGIONS_LANG", "it"),
		RegionsReloadInterval: reloadInterval,

		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "avalanche-bulletins"),
		PublishEnabled:  publishEnabled,
		PublishInterval: publishInterval,

		Tracing: tracing,
	}

	if cfg.AinevaURL == "" {
		return nil, errors.New("AINEVA_URL is required")
	}
	if cfg.ArpavURL == "" {
		return nil, errors.New("ARPAV_URL is required")
	}
	if cfg.PublishEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.PublishEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := parseDuration(key, fallback)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

// parseTracing reads the TRACING_* variables. Tracing stays off unless
// TRACING_ENABLED is true; the OTLP endpoint is only read for the otlp exporter.
func parseTracing() (observability.TracingConfig, error) {
	ratio, err := parseSampleRatio()
	if err != nil {
		return observability.TracingConfig{}, err
	}

	tc := observability.TracingConfig{
		ServiceName: sharedcfg.EnvOrDefault("TRACING_SERVICE_NAME", "nvdata-service"),
		SampleRatio: ratio,
	}
	if !strings.EqualFold(os.Getenv("TRACING_ENABLED"), "true") {
		return tc, nil
	}

	tc.Exporter = strings.ToLower(sharedcfg.EnvOrDefault("TRACING_EXPORTER", observability.ExporterStdout))
	switch tc.Exporter {
	case observability.ExporterStdout:
	case observability.ExporterOTLP:
		tc.Endpoint = sharedcfg.EnvOrDefault("OTLP_ENDPOINT", "localhost:4317")
	default:
		return observability.TracingConfig{}, fmt.Errorf("invalid TRACING_EXPORTER %q: want %s or %s",
			tc.Exporter, observability.ExporterStdout, observability.ExporterOTLP)
	}
	return tc, nil
}

func parseSampleRatio() (float64, error) {
	s := os.Getenv("TRACING_SAMPLE_RATIO")
	if s == "" {
		return 1, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r < 0 || r > 1 {
		return 0, errors.New("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1")
	}
	return r, nil
}
