package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings are the platform-wide options shared by every command.
// Values come from an optional YAML file, then ARCADE_* environment
// variables, then the defaults below.
type Settings struct {
	LogLevel string `yaml:"log-level" env:"ARCADE_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	DBPath   string `yaml:"db-path" env:"ARCADE_DB" env-default:"~/.arcade/scores.db" env-description:"SQLite score database"`
	SSH      SSH    `yaml:"ssh"`
	HTTP     HTTP   `yaml:"http"`
}

// SSH configures `arcade serve`.
type SSH struct {
	Address     string `yaml:"address" env:"ARCADE_SSH_ADDR" env-default:":23234"`
	HostKeyPath string `yaml:"host-key" env:"ARCADE_SSH_HOST_KEY"`
	IdleMinutes int    `yaml:"idle-minutes" env:"ARCADE_SSH_IDLE_MINUTES" env-default:"30"`
}

// HTTP configures `arcade api`.
type HTTP struct {
	Address string `yaml:"address" env:"ARCADE_HTTP_ADDR" env-default:":8080"`
}

// LoadSettings reads settings from path when it exists, then applies the
// environment. An empty path reads the environment only.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, s); err != nil {
				return nil, fmt.Errorf("config: read settings %s: %w", path, err)
			}
			return s, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat settings %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(s); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	return s, nil
}

// SettingsPath returns the default settings file location.
func SettingsPath() string {
	return userArcadePath("settings.yaml")
}

func userArcadePath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", filename)
}

// SettingsHelp describes the supported environment variables.
func SettingsHelp() string {
	text, err := cleanenv.GetDescription(&Settings{}, nil)
	if err != nil {
		return ""
	}
	return text
}
