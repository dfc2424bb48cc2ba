package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the quickpaste service
type Config struct {
	Port            int           `json:"port"`
	BaseURL         string        `json:"base_url"`
	DataDir         string        `json:"data_dir"`
	IDLength        int           `json:"id_length"`
	MaxPasteSize    int64         `json:"max_paste_size"`
	DefaultExpiry   time.Duration `json:"default_expiry"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
	RateLimit       float64       `json:"rate_limit"`
	RateBurst       int           `json:"rate_burst"`
	Version         string        `json:"version"`
	BuildTime       string        `json:"build_time"`
	CommitHash      string        `json:"commit_hash"`
}

// LoadConfig loads configuration from environment variables and CLI flags
func LoadConfig() *Config {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) *Config {
	config := &Config{
		Port:            8084,
		BaseURL:         "",
		DataDir:         "./data",
		IDLength:        8,
		MaxPasteSize:    500 * 1000, // 500KB
		DefaultExpiry:   7 * 24 * time.Hour,
		CleanupInterval: 10 * time.Minute,
		RateLimit:       5,
		RateBurst:       10,
	}

	// Parse CLI flags on a fresh FlagSet so LoadConfig can run more than
	// once in the same process (tests).
	fs := flag.NewFlagSet("quickpaste", flag.ContinueOnError)
	fs.IntVar(&config.Port, "port", config.Port, "Port to listen on")
	fs.StringVar(&config.BaseURL, "url", config.BaseURL, "Base URL for paste links")
	fs.StringVar(&config.DataDir, "data-dir", config.DataDir, "Directory for index and paste files")
	fs.IntVar(&config.IDLength, "id-length", config.IDLength, "Length of generated paste ids")
	fs.Int64Var(&config.MaxPasteSize, "max-size", config.MaxPasteSize, "Maximum paste size in bytes")
	fs.DurationVar(&config.DefaultExpiry, "expiry", config.DefaultExpiry, "Default paste expiry when the request omits one")
	fs.DurationVar(&config.CleanupInterval, "cleanup-interval", config.CleanupInterval, "How often the janitor sweeps expired pastes")
	fs.Float64Var(&config.RateLimit, "rate-limit", config.RateLimit, "Paste creations allowed per second per client")
	fs.IntVar(&config.RateBurst, "rate-burst", config.RateBurst, "Paste creation burst allowance per client")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		os.Exit(2)
	}

	// Override with environment variables if present
	if val := os.Getenv("PASTE_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			config.Port = port
		}
	}
	if val := os.Getenv("PASTE_BASE_URL"); val != "" {
		config.BaseURL = val
	}
	if val := os.Getenv("PASTE_DATA_DIR"); val != "" {
		config.DataDir = val
	}
	if val := os.Getenv("PASTE_ID_LENGTH"); val != "" {
		if length, err := strconv.Atoi(val); err == nil {
			config.IDLength = length
		}
	}
	if val := os.Getenv("PASTE_MAX_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.MaxPasteSize = size
		}
	}
	if val := os.Getenv("PASTE_DEFAULT_EXPIRY"); val != "" {
		if expiry, err := time.ParseDuration(val); err == nil {
			config.DefaultExpiry = expiry
		}
	}
	if val := os.Getenv("PASTE_CLEANUP_INTERVAL"); val != "" {
		if interval, err := time.ParseDuration(val); err == nil {
			config.CleanupInterval = interval
		}
	}
	if val := os.Getenv("PASTE_RATE_LIMIT"); val != "" {
		if limit, err := strconv.ParseFloat(val, 64); err == nil {
			config.RateLimit = limit
		}
	}
	if val := os.Getenv("PASTE_RATE_BURST"); val != "" {
		if burst, err := strconv.Atoi(val); err == nil {
			config.RateBurst = burst
		}
	}

	return config
}
