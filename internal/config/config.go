package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultLogLevel      = "info"
	defaultAPITimeout    = 10 * time.Second
	defaultArchivePrefix = "events/"
)

// Config holds all configuration for the application
type Config struct {
	// Slack configuration
	SlackBotToken      string // Required: Slack bot user OAuth token
	SlackSigningSecret string // Required: Slack app signing secret
	SlackDebug         bool   // Optional: slack-go client debug logging

	// SlackAPITimeout bounds outbound Web API calls made for one request
	SlackAPITimeout time.Duration

	// Optional S3 archive of raw event bodies; disabled when the bucket is empty
	EventArchiveBucket string
	EventArchivePrefix string

	// Log level
	LogLevel string
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:           getenv("LOG_LEVEL", defaultLogLevel),
		EventArchiveBucket: os.Getenv("EVENT_ARCHIVE_BUCKET"),
		EventArchivePrefix: getenv("EVENT_ARCHIVE_PREFIX", defaultArchivePrefix),
		SlackAPITimeout:    defaultAPITimeout,
	}

	// Load required values
	requiredVars := map[string]*string{
		"SLACK_BOT_TOKEN":      &cfg.SlackBotToken,
		"SLACK_SIGNING_SECRET": &cfg.SlackSigningSecret,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		sort.Strings(missingVars)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if v := os.Getenv("SLACK_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SLACK_API_TIMEOUT %q: must be a positive duration", v)
		}
		cfg.SlackAPITimeout = d
	}

	if v := os.Getenv("SLACK_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SLACK_DEBUG %q: %w", v, err)
		}
		cfg.SlackDebug = debug
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
