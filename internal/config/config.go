package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ejectkit/create-app/internal/branding"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
	envFile  = ".env"
)

// Known configuration keys.
const (
	KeyPackageManager = "package_manager"
	KeyTemplateDir    = "template_dir"
	KeyScriptsDir     = "scripts_dir"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeyPackageManager, KeyTemplateDir, KeyScriptsDir}

// PackageManagerAuto lets the scaffolder pick yarn when it is installed.
const PackageManagerAuto = "auto"

// Settings is a snapshot of the resolved configuration.
type Settings struct {
	// PackageManager is "auto", "npm" or "yarn".
	PackageManager string
	// TemplateDir replaces the embedded template tree when set.
	TemplateDir string
	// ScriptsDir replaces the embedded config/scripts tree when set.
	ScriptsDir string
}

// Dir returns the path to the config directory (~/.create-app/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.create-app/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnvFilePath returns the path to the optional dotenv file (~/.create-app/.env).
func EnvFilePath() string {
	return filepath.Join(Dir(), envFile)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Variables from ~/.create-app/.env are exported first without overriding
// anything already set in the process environment. A missing dotenv file is
// fine; an unreadable or malformed one is an error.
func Load() error {
	if err := godotenv.Load(EnvFilePath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", EnvFilePath(), err)
	}

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyPackageManager, PackageManagerAuto)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
	return nil
}

// Current returns the resolved settings. Load must have been called.
func Current() Settings {
	return Settings{
		PackageManager: viper.GetString(KeyPackageManager),
		TemplateDir:    viper.GetString(KeyTemplateDir),
		ScriptsDir:     viper.GetString(KeyScriptsDir),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown key %q (known keys: %v)", key, Keys)
	}
	if key == KeyPackageManager && !slices.Contains([]string{PackageManagerAuto, "npm", "yarn"}, value) {
		return fmt.Errorf("%s must be one of auto, npm, yarn; got %q", key, value)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
