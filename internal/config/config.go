package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Redis      Redis         `yaml:"redis"`
	Opponent   Opponent      `yaml:"opponent"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Opponent struct {
	// Seed of the opponent's random fallback; 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"OPPONENT_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
