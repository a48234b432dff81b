package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"clientctl/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/clientctl"
	configFileName = "config.yaml"
	dotEnvFileName = ".env"
)

// Environment variables that override file configuration.
const (
	EnvEndpoint       = "CLIENTCTL_ENDPOINT"
	EnvActorID        = "CLIENTCTL_ACTOR_ID"
	EnvPageSize       = "CLIENTCTL_PAGE_SIZE"
	EnvRequestTimeout = "CLIENTCTL_REQUEST_TIMEOUT"
	EnvCSRFHeader     = "CLIENTCTL_CSRF_HEADER"
	EnvCSRFToken      = "CLIENTCTL_CSRF_TOKEN"
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from configPath on top of the defaults.
// A missing file yields the defaults.
func LoadConfig(configPath string) (ClientctlConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return ClientctlConfig{}, fmt.Errorf("failed to read %s: %w", configFilePath, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ClientctlConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	logging.Debug("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// LoadDotEnv loads a .env file from dir into the process environment.
// Variables already set are left untouched; a missing file is ignored.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, dotEnvFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	logging.Debug("Config", "Loaded environment from %s", path)
	return nil
}

// ApplyEnv overrides cfg with CLIENTCTL_* environment variables.
func ApplyEnv(cfg *ClientctlConfig) error {
	var errs ValidationErrors

	if v, ok := lookup(EnvEndpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := lookup(EnvActorID); ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			errs.Add(EnvActorID, "must be an integer", v)
		} else {
			cfg.ActorID = id
		}
	}
	if v, ok := lookup(EnvPageSize); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			errs.Add(EnvPageSize, "must be an integer", v)
		} else {
			cfg.PageSize = size
		}
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs.Add(EnvRequestTimeout, "must be a duration such as 30s", v)
		} else {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := lookup(EnvCSRFHeader); ok {
		cfg.CSRF.Header = v
	}
	if v, ok := lookup(EnvCSRFToken); ok {
		cfg.CSRF.Token = v
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
