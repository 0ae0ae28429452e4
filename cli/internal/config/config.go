// Package config resolves CLI configuration from config files, the
// environment and built-in defaults.
package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem configuration goes through. Tests swap it for
// an in-memory one.
var AppFs = afero.NewOsFs()

// Config holds the application configuration
type Config struct {
	DocumentPath string
	OutputPath   string
	ExportPath   string
}

// LoadConfig loads configuration from .chipdb.yaml files, CHIPDB_*
// environment variables and defaults, in that order of precedence.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName(".chipdb")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "chipdb"))

	v.SetEnvPrefix("CHIPDB")
	v.AutomaticEnv()

	v.SetDefault("document_path", "device.atdf")
	v.SetDefault("output_path", "./chip")
	v.SetDefault("export_path", "device.sqlite")

	// Missing config files are fine, defaults cover everything.
	_ = v.ReadInConfig()

	// .env files feed CHIPDB_* variables into AutomaticEnv.
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		DocumentPath: v.GetString("document_path"),
		OutputPath:   v.GetString("output_path"),
		ExportPath:   v.GetString("export_path"),
	}

	return cfg, nil
}

// SaveConfig persists configuration under the user config directory.
func SaveConfig(cfg *Config) error {
	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")
	v.Set("document_path", cfg.DocumentPath)
	v.Set("output_path", cfg.OutputPath)
	v.Set("export_path", cfg.ExportPath)

	configPath := filepath.Join(home, ".config", "chipdb")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return err
	}

	return v.WriteConfigAs(filepath.Join(configPath, ".chipdb.yaml"))
}
