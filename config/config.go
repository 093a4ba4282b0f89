package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	envAPIURL      = "BATTLESHIP_API_URL"
	envHTTPTimeout = "BATTLESHIP_HTTP_TIMEOUT"
	envSessionFile = "BATTLESHIP_SESSION_FILE"
	envAudio       = "BATTLESHIP_AUDIO"
	envLogFile     = "BATTLESHIP_LOG_FILE"
	envLogLevel    = "BATTLESHIP_LOG_LEVEL"

	defaultAPIURL      = "http://localhost:8080"
	defaultHTTPTimeout = 30 * time.Second
	defaultLogFile     = "battleship.log"
)

var userHomeDir = os.UserHomeDir

type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	SessionFile string
	Audio       bool
	LogFile     string
	LogLevel    log.Level
}

// Load reads the given dotenv files (missing files are skipped) and then the
// process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("godotenv.Load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		APIURL:      defaultAPIURL,
		HTTPTimeout: defaultHTTPTimeout,
		Audio:       true,
		LogFile:     defaultLogFile,
		LogLevel:    log.InfoLevel,
	}

	if v, ok := lookup(envAPIURL); ok && v != "" {
		cfg.APIURL = v
	}

	if v, ok := lookup(envHTTPTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%s: invalid duration %q", envHTTPTimeout, v)
		}
		cfg.HTTPTimeout = d
	}

	if v, ok := lookup(envAudio); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid boolean %q", envAudio, v)
		}
		cfg.Audio = b
	}

	if v, ok := lookup(envLogFile); ok && v != "" {
		cfg.LogFile = v
	}

	if v, ok := lookup(envLogLevel); ok && v != "" {
		lvl, err := parseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if v, ok := lookup(envSessionFile); ok && v != "" {
		cfg.SessionFile = v
	} else {
		home, _ := lookup("HOME")
		if home == "" {
			var err error
			if home, err = userHomeDir(); err != nil || home == "" {
				return Config{}, fmt.Errorf("%s: no home directory, set it explicitly: %v", envSessionFile, err)
			}
		}
		cfg.SessionFile = filepath.Join(home, ".battleship", "session.json")
	}

	return cfg, nil
}

func parseLevel(s string) (log.Level, error) {
	switch s {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
