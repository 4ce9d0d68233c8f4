package configs

import (
	"fmt"
	"os"
)

// DefaultCipher writes the legacy format that every jaylock release can read.
const DefaultCipher = "cbc"

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Crypto  CryptoConfig  `toml:"crypto"`
	Editor  EditorConfig  `toml:"editor"`
}

type StorageConfig struct {
	// Dir is the notes directory. Empty means the default ~/.jaylock.
	Dir string `toml:"dir"`
}

type CryptoConfig struct {
	// Cipher selects the mode used when writing notes: "cbc" or "secretbox".
	Cipher string `toml:"cipher"`
}

type EditorConfig struct {
	// Banner shows the ASCII banner when an interactive session opens.
	Banner bool `toml:"banner"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Crypto: CryptoConfig{Cipher: DefaultCipher},
		Editor: EditorConfig{Banner: true},
	}
}

// LoadConfig loads the configuration file, returning defaults if it does not exist.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(JaylockSettings.ConfigPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(JaylockSettings.ConfigPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the configuration file, creating its directory if needed.
func SaveConfig(config *Config) error {
	if err := SaveTOML(JaylockSettings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// ConfigExists reports whether a config file is present.
func ConfigExists() bool {
	_, err := os.Stat(JaylockSettings.ConfigPath)
	return err == nil
}
