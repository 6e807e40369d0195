package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Device DeviceConfig
	Server ServerConfig
	Sweep  SweepConfig
}

// DeviceConfig holds analyzer connection settings
type DeviceConfig struct {
	SerialPort  string
	BaudRate    int
	ReadTimeout time.Duration
	LockTimeout time.Duration
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// SweepConfig holds defaults for derived sweep metrics
type SweepConfig struct {
	SWRThresholds []float64
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Load loads configuration from environment variables, .env files and any
// flags bound into viper beforehand
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERIAL_PORT", "")
	viper.SetDefault("BAUD_RATE", 57600)
	viper.SetDefault("READ_TIMEOUT", "1s")
	viper.SetDefault("LOCK_TIMEOUT", "30s")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:8000")
	viper.SetDefault("SWR_THRESHOLDS", "1.5,2")

	// Environment variables override .env file values, and ENVIRONMENT
	// itself must come from the environment to pick the file
	viper.AutomaticEnv()
	viper.BindEnv("ENVIRONMENT")

	// Read from .env files based on environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Ignore error - file may not exist
	_ = viper.ReadInConfig()

	viper.BindEnv("SERIAL_PORT")
	viper.BindEnv("BAUD_RATE")
	viper.BindEnv("READ_TIMEOUT")
	viper.BindEnv("LOCK_TIMEOUT")
	viper.BindEnv("HOST")
	viper.BindEnv("PORT")
	viper.BindEnv("LOG_LEVEL")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("SWR_THRESHOLDS")

	var config Config
	config.Device.SerialPort = viper.GetString("SERIAL_PORT")
	config.Device.BaudRate = viper.GetInt("BAUD_RATE")
	config.Device.ReadTimeout = viper.GetDuration("READ_TIMEOUT")
	config.Device.LockTimeout = viper.GetDuration("LOCK_TIMEOUT")
	config.Server.Host = viper.GetString("HOST")
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.LogLevel = viper.GetString("LOG_LEVEL")
	config.Server.AllowedOrigins = strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",")

	thresholds, err := parseThresholds(viper.GetString("SWR_THRESHOLDS"))
	if err != nil {
		return nil, err
	}
	config.Sweep.SWRThresholds = thresholds

	if config.Device.BaudRate <= 0 {
		return nil, fmt.Errorf("BAUD_RATE must be positive, got %d", config.Device.BaudRate)
	}
	if config.Device.ReadTimeout <= 0 {
		return nil, fmt.Errorf("READ_TIMEOUT must be positive, got %s", config.Device.ReadTimeout)
	}

	log.Debug().
		Str("serialPort", config.Device.SerialPort).
		Int("baudRate", config.Device.BaudRate).
		Dur("readTimeout", config.Device.ReadTimeout).
		Str("addr", config.Server.Addr()).
		Msg("Configuration loaded")

	return &config, nil
}

func parseThresholds(s string) ([]float64, error) {
	var thresholds []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SWR_THRESHOLDS entry %q: %w", part, err)
		}
		thresholds = append(thresholds, v)
	}
	return thresholds, nil
}
