package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()
	cm, err := NewManagerAt(filepath.Join(t.TempDir(), ".clippy"))
	if err != nil {
		t.Fatalf("NewManagerAt() error = %v", err)
	}
	return cm
}

func TestLoadEmpty(t *testing.T) {
	cm := setupTestManager(t)
	file, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Models) != 0 || file.DefaultModel != "" || !file.LogEnabled {
		t.Errorf("Load() = %+v, want empty config with logging on", file)
	}
}

func TestNewConfigManagerHonorsEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(HomeEnv, dir)

	cm, err := NewConfigManager()
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}
	if cm.GetConfigPath() != filepath.Join(dir, "config.json") {
		t.Errorf("GetConfigPath() = %q", cm.GetConfigPath())
	}
	if cm.HistoryDir() != filepath.Join(dir, "history") {
		t.Errorf("HistoryDir() = %q", cm.HistoryDir())
	}
}

func TestSetModel(t *testing.T) {
	cm := setupTestManager(t)

	became, err := cm.SetModel("gpt-4o", "sk-first", "openai", false)
	if err != nil {
		t.Fatalf("SetModel() error = %v", err)
	}
	if !became {
		t.Error("first model should become the default")
	}

	became, err = cm.SetModel("claude-3", "ak-second", "anthropic", false)
	if err != nil {
		t.Fatalf("SetModel() error = %v", err)
	}
	if became {
		t.Error("second model should not replace the default")
	}

	became, err = cm.SetModel("gemini-pro", "g-third", "google", true)
	if err != nil || !became {
		t.Fatalf("SetModel(makeDefault) = %v, %v", became, err)
	}

	file, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.DefaultModel != "gemini-pro" {
		t.Errorf("DefaultModel = %q", file.DefaultModel)
	}
	if got := strings.Join(file.ModelNames(), ","); got != "claude-3,gemini-pro,gpt-4o" {
		t.Errorf("ModelNames() = %s", got)
	}
	if file.Models["claude-3"].APIKey != "ak-second" || file.Models["claude-3"].ProviderType != "anthropic" {
		t.Errorf("claude-3 = %+v", file.Models["claude-3"])
	}
}

func TestSetModelRejectsInvalid(t *testing.T) {
	cm := setupTestManager(t)
	if _, err := cm.SetModel("gpt-4o", "", "openai", false); err == nil {
		t.Error("empty API key should be rejected")
	}
	if _, err := cm.SetModel("gpt-4o", "k", "cohere", false); err == nil {
		t.Error("unknown provider should be rejected")
	}
}

func TestAPIKeysEncryptedAtRest(t *testing.T) {
	cm := setupTestManager(t)
	if _, err := cm.SetModel("gpt-4o", "sk-secret-value", "openai", false); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(cm.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "sk-secret-value") {
		t.Error("API key stored in plaintext")
	}
	if stored := gjson.GetBytes(raw, "models.gpt-4o.api_key").String(); !strings.HasPrefix(stored, "ENC:") {
		t.Errorf("stored key = %q, want sealed value", stored)
	}
	if gjson.GetBytes(raw, "default_model").String() != "gpt-4o" {
		t.Errorf("default_model = %s", gjson.GetBytes(raw, "default_model").Raw)
	}

	info, _ := os.Stat(cm.GetConfigPath())
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestPlaintextKeysStillLoad(t *testing.T) {
	cm := setupTestManager(t)
	content := `{"models":{"gpt-4o":{"api_key":"sk-hand-written","provider_type":"openai"}},"default_model":"gpt-4o"}`
	if err := os.WriteFile(cm.GetConfigPath(), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	file, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Models["gpt-4o"].APIKey != "sk-hand-written" {
		t.Errorf("APIKey = %q", file.Models["gpt-4o"].APIKey)
	}
	if !file.LogEnabled {
		t.Error("missing log_enabled should default to true")
	}
}

func TestCorruptConfigFallsBack(t *testing.T) {
	cm := setupTestManager(t)
	var warnings []string
	cm.Warn = func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }

	os.WriteFile(cm.GetConfigPath(), []byte("{not json"), 0600)
	file, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Models) != 0 || !file.LogEnabled {
		t.Errorf("Load() = %+v, want defaults", file)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "corrupted") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestWriteRestoresCorruptConfigFromBackup(t *testing.T) {
	cm := setupTestManager(t)
	cm.SetModel("gpt-4o", "k1", "openai", false)
	// the second save backs up the file holding gpt-4o
	cm.SetModel("claude-3", "k2", "anthropic", false)

	var warnings []string
	cm.Warn = func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }
	os.WriteFile(cm.GetConfigPath(), []byte("{not json"), 0600)

	if _, err := cm.SetModel("gemini-pro", "k3", "google", false); err != nil {
		t.Fatalf("SetModel() error = %v", err)
	}
	file, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := file.Models["gpt-4o"]; !ok {
		t.Errorf("models = %v, want gpt-4o restored from backup", file.ModelNames())
	}
	if _, ok := file.Models["gemini-pro"]; !ok {
		t.Errorf("models = %v, want gemini-pro added", file.ModelNames())
	}
	if file.DefaultModel != "gpt-4o" {
		t.Errorf("DefaultModel = %q", file.DefaultModel)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Restored") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestSetDefault(t *testing.T) {
	cm := setupTestManager(t)
	cm.SetModel("gpt-4o", "k1", "openai", false)
	cm.SetModel("claude-3", "k2", "anthropic", false)

	if err := cm.SetDefault("claude-3"); err != nil {
		t.Fatalf("SetDefault() error = %v", err)
	}
	file, _ := cm.Load()
	if file.DefaultModel != "claude-3" {
		t.Errorf("DefaultModel = %q", file.DefaultModel)
	}

	if err := cm.SetDefault("missing"); err == nil {
		t.Error("SetDefault(missing) should fail")
	}
}

func TestRemoveModel(t *testing.T) {
	cm := setupTestManager(t)
	cm.SetModel("gpt-4o", "k1", "openai", false)
	cm.SetModel("claude-3", "k2", "anthropic", false)

	wasDefault, err := cm.RemoveModel("claude-3")
	if err != nil || wasDefault {
		t.Fatalf("RemoveModel(non-default) = %v, %v", wasDefault, err)
	}

	wasDefault, err = cm.RemoveModel("gpt-4o")
	if err != nil || !wasDefault {
		t.Fatalf("RemoveModel(default) = %v, %v", wasDefault, err)
	}

	file, _ := cm.Load()
	if len(file.Models) != 0 || file.DefaultModel != "" {
		t.Errorf("Load() = %+v", file)
	}

	if _, err := cm.RemoveModel("gpt-4o"); err == nil {
		t.Error("removing a missing model should fail")
	}
}

func TestSetLogEnabled(t *testing.T) {
	cm := setupTestManager(t)
	cm.SetModel("gpt-4o", "k1", "openai", false)

	if err := cm.SetLogEnabled(false); err != nil {
		t.Fatalf("SetLogEnabled(false) error = %v", err)
	}
	file, _ := cm.Load()
	if file.LogEnabled {
		t.Error("LogEnabled should be false")
	}
	if file.Models["gpt-4o"].APIKey != "k1" {
		t.Error("toggling logging must keep the models")
	}

	if err := cm.SetLogEnabled(true); err != nil {
		t.Fatalf("SetLogEnabled(true) error = %v", err)
	}
	file, _ = cm.Load()
	if !file.LogEnabled {
		t.Error("LogEnabled should be true")
	}
}

func TestSetLogEnabledWithoutConfig(t *testing.T) {
	cm := setupTestManager(t)
	if err := cm.SetLogEnabled(false); err != nil {
		t.Fatalf("SetLogEnabled() error = %v", err)
	}
	file, _ := cm.Load()
	if file.LogEnabled {
		t.Error("LogEnabled should be false")
	}
}

func TestConcurrentSetModel(t *testing.T) {
	cm := setupTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := cm.SetModel(fmt.Sprintf("gpt-%d", i), "k", "openai", false); err != nil {
				t.Errorf("SetModel(%d) error = %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	file, _ := cm.Load()
	if len(file.Models) != 10 {
		t.Errorf("models = %d, want 10", len(file.Models))
	}
}
