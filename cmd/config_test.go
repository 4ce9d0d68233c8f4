package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/configs"
)

func TestConfigInit_WritesDefaults(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()

	output, err := runCLI("config", "init")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(output, "Configuration saved to") {
		t.Errorf("Expected saved message, got: %s", output)
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Crypto.Cipher != configs.DefaultCipher {
		t.Errorf("Cipher = %q, want %q", cfg.Crypto.Cipher, configs.DefaultCipher)
	}
	if !cfg.Editor.Banner {
		t.Error("Expected banner to default to true")
	}
}

func TestConfigInit_StoresFlags(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	dir := filepath.Join(t.TempDir(), "private")

	if _, err := runCLI("config", "init", "--cipher", "secretbox", "--dir", dir); err != nil {
		t.Fatalf("config init returned error: %v", err)
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Crypto.Cipher != "secretbox" {
		t.Errorf("Cipher = %q, want secretbox", cfg.Crypto.Cipher)
	}
	if cfg.Storage.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Storage.Dir, dir)
	}
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()

	if _, err := runCLI("config", "init", "--cipher", "secretbox"); err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	ResetGlobalState()
	catchExit()

	output, err := runCLI("config", "init")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected already-exists message, got: %s", output)
	}
	cfg, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Crypto.Cipher != "secretbox" {
		t.Errorf("Expected existing config to be kept, cipher = %q", cfg.Crypto.Cipher)
	}

	if _, err := runCLI("config", "init", "--force"); err != nil {
		t.Fatalf("config init --force returned error: %v", err)
	}
	cfg, err = configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Crypto.Cipher != configs.DefaultCipher {
		t.Errorf("Expected --force to rewrite defaults, cipher = %q", cfg.Crypto.Cipher)
	}
}

func TestConfigShow_JSONReflectsEnvironment(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	dir := t.TempDir()
	t.Setenv(configs.NotesDirEnv, dir)

	output, err := runCLI("config", "show", "--json")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}

	var eff effectiveConfig
	if err := json.Unmarshal([]byte(output), &eff); err != nil {
		t.Fatalf("Output is not JSON: %v\nOutput: %s", err, output)
	}
	if eff.NotesDir != dir {
		t.Errorf("NotesDir = %q, want %q", eff.NotesDir, dir)
	}
	if eff.ConfigExists {
		t.Error("Expected no config file")
	}
	if eff.Cipher != "cbc" {
		t.Errorf("Cipher = %q, want cbc", eff.Cipher)
	}
}

func TestConfigShow_CipherFlagWins(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()

	output, err := runCLI("config", "show", "--cipher", "secretbox")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	if !strings.Contains(output, "secretbox") {
		t.Errorf("Expected flag cipher in output, got: %s", output)
	}
	if !strings.Contains(output, "not found, using defaults") {
		t.Errorf("Expected missing config note, got: %s", output)
	}
}
