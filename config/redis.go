package config

// RedisConfig contains Redis configuration.
// Redis is only required when the OAuth challenge store runs in redis mode.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
