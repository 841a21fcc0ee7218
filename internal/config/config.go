package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel      string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat     string    `yaml:"log-format" env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	Mode          string    `yaml:"mode" env:"GAME_MODE" validate:"omitempty,oneof=human computer"`
	ComputerFirst bool      `yaml:"computer-first" env:"COMPUTER_FIRST" env-default:"false"`
	Redis         Redis     `yaml:"redis" env-prefix:"REDIS_"`
	Telemetry     Telemetry `yaml:"telemetry" env-prefix:"TELEMETRY_"`
}

// Redis backs the move book. When disabled the book lives in memory.
type Redis struct {
	Enabled bool          `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"HOST" env-default:"localhost" validate:"required_if=Enabled true"`
	Port    string        `yaml:"port" env:"PORT" env-default:"6379" validate:"numeric"`
	TTL     time.Duration `yaml:"ttl" env:"TTL" env-default:"24h" validate:"min=0"`
}

type Telemetry struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED" env-default:"false"`
	File    string `yaml:"file" env:"FILE" env-default:"traces.json" validate:"required_if=Enabled true"`
}

// Load reads path and applies env overrides. A missing file is not an
// error: the config then comes from the environment and defaults alone.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
