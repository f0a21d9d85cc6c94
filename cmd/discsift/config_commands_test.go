package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Feature length: 85% of baseline")
	requireContains(t, out, "History: "+filepath.Join(env.dataDir, "history.db")+" (keeps 10 runs)")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)
	home := os.Getenv("HOME")
	requireContains(t, out, "Data directory: "+filepath.Join(home, ".local", "share", "discsift"))
	requireContains(t, out, "Feature length: 85% of baseline, over 2m0s, 2+ chapters")
	requireContains(t, out, "History: "+filepath.Join(home, ".local", "share", "discsift", "history.db")+" (keeps 200 runs)")
	requireContains(t, out, "Language: inferred from audio tracks")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env, "\n[detection]\nfeature_ratio = 0.5\n")

	if _, _, err := runCLI(t, env, "config", "validate"); err == nil {
		t.Fatal("expected unknown key to fail validation")
	}
}
