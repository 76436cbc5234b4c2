package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"clippy/config/models"
	"clippy/config/storage"
	"clippy/config/validation"
	"clippy/internal/crypto"
)

const (
	// HomeEnv overrides the configuration directory
	HomeEnv = "CLIPPY_HOME"

	configFileName = "config.json"
	keyFileName    = ".key"
	historyDirName = "history"
)

// Manager manages the model configuration file
type Manager struct {
	dir        string
	configPath string
	mu         sync.Mutex
	sealer     *crypto.Sealer
	backups    *storage.BackupManager

	// Warn receives non-fatal problems such as an unreadable config file
	Warn func(format string, args ...any)
}

// NewConfigManager creates a Manager rooted at $CLIPPY_HOME or ~/.clippy
func NewConfigManager() (*Manager, error) {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".clippy")
	}
	return NewManagerAt(dir)
}

// NewManagerAt creates a Manager rooted at dir, creating it if needed
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &Manager{
		dir:        dir,
		configPath: filepath.Join(dir, configFileName),
		backups:    storage.NewBackupManager(storage.DefaultBackupRetention),
	}, nil
}

// Dir returns the configuration directory
func (cm *Manager) Dir() string {
	return cm.dir
}

// GetConfigPath returns the path to the config file
func (cm *Manager) GetConfigPath() string {
	return cm.configPath
}

// HistoryDir returns the directory interaction logs are written to
func (cm *Manager) HistoryDir() string {
	return filepath.Join(cm.dir, historyDirName)
}

func (cm *Manager) warn(format string, args ...any) {
	if cm.Warn != nil {
		cm.Warn(format, args...)
	}
}

func (cm *Manager) keys() (*crypto.Sealer, error) {
	if cm.sealer == nil {
		s, err := crypto.LoadOrCreate(filepath.Join(cm.dir, keyFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to load encryption key: %w", err)
		}
		cm.sealer = s
	}
	return cm.sealer, nil
}

// withLock runs fn while holding the advisory lock file
func (cm *Manager) withLock(exclusive bool, fn func() error) error {
	f, err := os.OpenFile(cm.configPath+".lock", os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer f.Close()

	lock := lockFileShared
	if exclusive {
		lock = lockFileExclusive
	}
	if err := lock(f); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer func() {
		if err := unlockFile(f); err != nil {
			cm.warn("Failed to unlock config file: %v", err)
		}
	}()
	return fn()
}

// readRaw returns the config bytes, or nil when the file does not exist
func (cm *Manager) readRaw() ([]byte, error) {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// decode parses config bytes with API keys decrypted.
// Invalid content falls back to an empty config with a warning.
func (cm *Manager) decode(data []byte) (*models.File, error) {
	file := models.NewFile()
	if len(data) == 0 {
		return file, nil
	}
	if !gjson.ValidBytes(data) {
		cm.warn("Config file at %s is corrupted or unreadable. Using defaults.", cm.configPath)
		return file, nil
	}
	if err := json.Unmarshal(data, file); err != nil {
		cm.warn("Config file at %s has an unexpected shape (%v). Using defaults.", cm.configPath, err)
		return models.NewFile(), nil
	}
	if !gjson.GetBytes(data, "log_enabled").Exists() {
		file.LogEnabled = true
	}
	if file.Models == nil {
		file.Models = map[string]models.ModelConfig{}
	}

	sealer, err := cm.keys()
	if err != nil {
		return nil, err
	}
	for name, mc := range file.Models {
		key, err := sealer.Open(mc.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt API key for model '%s': %w", name, err)
		}
		mc.APIKey = key
		file.Models[name] = mc
	}
	return file, nil
}

// encode serializes file with API keys sealed
func (cm *Manager) encode(file *models.File) ([]byte, error) {
	sealer, err := cm.keys()
	if err != nil {
		return nil, err
	}
	out := *file
	out.Models = make(map[string]models.ModelConfig, len(file.Models))
	for name, mc := range file.Models {
		if !crypto.IsEncrypted(mc.APIKey) {
			sealed, err := sealer.Seal(mc.APIKey)
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt API key for model '%s': %w", name, err)
			}
			mc.APIKey = sealed
		}
		out.Models[name] = mc
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize config: %w", err)
	}
	return data, nil
}

func (cm *Manager) loadConfigFile() (*models.File, error) {
	data, err := cm.readRaw()
	if err != nil {
		return nil, err
	}
	return cm.decode(data)
}

// readRecovered is readRaw for writers: a corrupted file is replaced by its
// newest backup first so a save does not discard every configured model.
// Must be called with the exclusive lock held.
func (cm *Manager) readRecovered() ([]byte, error) {
	data, err := cm.readRaw()
	if err != nil || len(data) == 0 || gjson.ValidBytes(data) {
		return data, err
	}
	if err := cm.backups.RestoreFromLatestBackup(cm.configPath); err != nil {
		return data, nil
	}
	cm.warn("Config file at %s was corrupted. Restored the latest backup.", cm.configPath)
	return cm.readRaw()
}

func (cm *Manager) saveConfigFile(file *models.File) error {
	data, err := cm.encode(file)
	if err != nil {
		return err
	}
	return storage.AtomicWrite(cm.configPath, data, cm.backups)
}

// update loads, mutates and saves the config under an exclusive lock
func (cm *Manager) update(fn func(*models.File) error) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.withLock(true, func() error {
		data, err := cm.readRecovered()
		if err != nil {
			return err
		}
		file, err := cm.decode(data)
		if err != nil {
			return err
		}
		if err := fn(file); err != nil {
			return err
		}
		return cm.saveConfigFile(file)
	})
}

// Load returns the current configuration with API keys decrypted
func (cm *Manager) Load() (*models.File, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	var file *models.File
	err := cm.withLock(false, func() error {
		var err error
		file, err = cm.loadConfigFile()
		return err
	})
	return file, err
}

// SetModel adds or replaces a model. The first configured model, or any
// model when makeDefault is set, becomes the default. It reports whether
// the model is now the default.
func (cm *Manager) SetModel(name, apiKey, providerType string, makeDefault bool) (bool, error) {
	mc := models.ModelConfig{APIKey: apiKey, ProviderType: providerType}
	if err := validation.NewValidator().ValidateModelConfig(name, mc); err != nil {
		return false, err
	}

	becameDefault := false
	err := cm.update(func(file *models.File) error {
		file.Models[name] = mc
		if makeDefault || file.DefaultModel == "" {
			file.DefaultModel = name
			becameDefault = true
		}
		return nil
	})
	return becameDefault, err
}

// SetDefault makes name the default model
func (cm *Manager) SetDefault(name string) error {
	return cm.update(func(file *models.File) error {
		if _, ok := file.Models[name]; !ok {
			return fmt.Errorf("model '%s' not found in configuration", name)
		}
		file.DefaultModel = name
		return nil
	})
}

// RemoveModel deletes name and reports whether it was the default
func (cm *Manager) RemoveModel(name string) (bool, error) {
	wasDefault := false
	err := cm.update(func(file *models.File) error {
		if _, ok := file.Models[name]; !ok {
			return fmt.Errorf("model '%s' not found in configuration", name)
		}
		delete(file.Models, name)
		if file.DefaultModel == name {
			file.DefaultModel = ""
			wasDefault = true
		}
		return nil
	})
	return wasDefault, err
}

// SetLogEnabled toggles interaction logging. Only the log_enabled member
// is rewritten; the rest of the file is kept byte for byte.
func (cm *Manager) SetLogEnabled(enabled bool) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.withLock(true, func() error {
		data, err := cm.readRecovered()
		if err != nil {
			return err
		}
		if len(data) == 0 || !gjson.ValidBytes(data) {
			file := models.NewFile()
			file.LogEnabled = enabled
			return cm.saveConfigFile(file)
		}
		updated, err := sjson.SetBytes(data, "log_enabled", enabled)
		if err != nil {
			return fmt.Errorf("failed to update log setting: %w", err)
		}
		return storage.AtomicWrite(cm.configPath, updated, cm.backups)
	})
}
