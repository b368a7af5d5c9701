package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort        string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	Redis           Redis         `yaml:"redis"`
	SQLite          SQLite        `yaml:"sqlite"`
	Lock            Lock          `yaml:"lock"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type SQLite struct {
	StoragePath string `yaml:"storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./data/tictactoe.db"`
}

// Lock tunes the per-game single-writer lock.
type Lock struct {
	TTL      time.Duration `yaml:"ttl" env:"LOCK_TTL" env-default:"5s"`
	Attempts uint          `yaml:"attempts" env:"LOCK_ATTEMPTS" env-default:"10"`
	Delay    time.Duration `yaml:"delay" env:"LOCK_DELAY" env-default:"50ms"`
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
