package config

// ObservabilityConfig contains observability configuration.
type ObservabilityConfig struct {
	// MetricsEnabled exposes Prometheus metrics on /metrics when true.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}
