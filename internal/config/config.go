// Package config loads the datamapper tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem configuration and profile files are read from.
var AppFs = afero.NewOsFs()

const (
	// DefaultProfilesFile is the profile configuration source used when none is configured.
	DefaultProfilesFile = "database.conf"

	configName = ".datamapper"
	envPrefix  = "DATAMAPPER"
)

// Config holds the application configuration.
type Config struct {
	// ProfilesFile is the INI file profiles are read from.
	ProfilesFile string
	// DefaultProfile is the profile resolve uses when no name is given.
	DefaultProfile string
	// Debug enables debug logging.
	Debug bool
}

// Load reads configuration from .datamapper.yaml, DATAMAPPER_* environment
// variables and .env files. A missing config file is not an error.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	return &Config{
		ProfilesFile:   v.GetString("profiles_file"),
		DefaultProfile: v.GetString("default_profile"),
		Debug:          v.GetBool("debug"),
	}, nil
}

func newViper() (*viper.Viper, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "datamapper"))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("profiles_file", DefaultProfilesFile)
	v.SetDefault("default_profile", "")
	v.SetDefault("debug", false)
	return v, nil
}

// loadDotEnv exports .env, then .env.local with higher priority. Variables
// already set in the environment win over .env but not over .env.local.
func loadDotEnv() error {
	if err := applyEnvFile(".env", false); err != nil {
		return err
	}
	return applyEnvFile(".env.local", true)
}

func applyEnvFile(path string, override bool) error {
	f, err := AppFs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for key, value := range values {
		if _, set := os.LookupEnv(key); set && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Save writes cfg to $HOME/.config/datamapper/.datamapper.yaml.
func Save(cfg *Config) (string, error) {
	v, err := newViper()
	if err != nil {
		return "", err
	}
	v.Set("profiles_file", cfg.ProfilesFile)
	v.Set("default_profile", cfg.DefaultProfile)
	v.Set("debug", cfg.Debug)

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "datamapper")
	if err := AppFs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, configName+".yaml")
	return path, v.WriteConfigAs(path)
}
