// SPDX-License-Identifier: EPL-2.0

// Package config reads the soundboard settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ik5/soundboard/loader"
	"github.com/joho/godotenv"
)

// Config holds the process settings. Command line flags override it.
type Config struct {
	// Dir is the sound directory the server scans.
	Dir string
	// Addr is the listen address of the sound server.
	Addr string
	// Server is the base URL players fetch the catalog and audio from.
	Server string

	SampleRate  int
	BatchSize   int
	MaxRetries  int
	RetryDelay  time.Duration
	LoadTimeout time.Duration

	LogLevel string
	// LogFile, when set, receives a rotated copy of the log.
	LogFile string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("750ms") or plain milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

// Load reads .env files, if present, then the environment. Variables
// already set win over the files.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)

	return &Config{
		Dir:         getEnv("SOUNDBOARD_DIR", "public/soundboard"),
		Addr:        getEnv("SOUNDBOARD_ADDR", ":5174"),
		Server:      getEnv("SOUNDBOARD_SERVER", "http://localhost:5174"),
		SampleRate:  getEnvInt("SOUNDBOARD_SAMPLE_RATE", loader.DefaultSampleRate),
		BatchSize:   getEnvInt("SOUNDBOARD_BATCH_SIZE", loader.DefaultBatchSize),
		MaxRetries:  getEnvInt("SOUNDBOARD_MAX_RETRIES", loader.DefaultMaxRetries),
		RetryDelay:  getEnvDuration("SOUNDBOARD_RETRY_DELAY", loader.DefaultRetryDelay),
		LoadTimeout: getEnvDuration("SOUNDBOARD_LOAD_TIMEOUT", loader.DefaultTimeout),
		LogLevel:    getEnv("SOUNDBOARD_LOG_LEVEL", "info"),
		LogFile:     os.Getenv("SOUNDBOARD_LOG_FILE"),
	}
}

// LoaderOptions maps the config onto the loader settings. A MaxRetries of
// 0 disables retries; the loader itself reads 0 as its default.
func (c *Config) LoaderOptions() loader.Options {
	retries := c.MaxRetries
	if retries == 0 {
		retries = -1
	}

	return loader.Options{
		SampleRate: c.SampleRate,
		BatchSize:  c.BatchSize,
		MaxRetries: retries,
		RetryDelay: c.RetryDelay,
		Timeout:    c.LoadTimeout,
	}
}
