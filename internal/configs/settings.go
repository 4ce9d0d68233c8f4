package configs

import (
	"log"
	"os"
	"path/filepath"
)

// NotesDirEnv overrides the notes directory when set.
const NotesDirEnv = "JAYLOCK_DIR"

type Settings struct {
	// DefaultNotesDir is where notes live when neither a flag, NotesDirEnv
	// nor the config file say otherwise.
	DefaultNotesDir string
	ConfigPath      string
}

var JaylockSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the home directory on systems without XDG or AppData.
		configDir = filepath.Join(homeDir, ".config")
	}

	JaylockSettings = &Settings{
		DefaultNotesDir: filepath.Join(homeDir, ".jaylock"),
		ConfigPath:      filepath.Join(configDir, "jaylock", "config.toml"),
	}
}

// ResolveNotesDir picks the notes directory. Precedence: flag value,
// NotesDirEnv, config file, default.
func ResolveNotesDir(flagDir string, cfg *Config) string {
	if flagDir != "" {
		return flagDir
	}
	if env := os.Getenv(NotesDirEnv); env != "" {
		return env
	}
	if cfg != nil && cfg.Storage.Dir != "" {
		return expandHome(cfg.Storage.Dir)
	}
	return JaylockSettings.DefaultNotesDir
}

// ResolveCipher picks the cipher mode name: flag value, config file, default.
func ResolveCipher(flagCipher string, cfg *Config) string {
	if flagCipher != "" {
		return flagCipher
	}
	if cfg != nil && cfg.Crypto.Cipher != "" {
		return cfg.Crypto.Cipher
	}
	return DefaultCipher
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
