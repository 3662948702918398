package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/service"
)

var log = log15.New("module", "config")

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigName is tried first when picking the default configuration
const DefaultConfigName = "classic"

// extensions are tried in order when resolving a config name
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles puzzle configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *puzzle.Config
	configs       map[string]*puzzle.Config
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	if _, err := Schema(); err != nil {
		return nil, err
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*puzzle.Config),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by name, with or without extension
func (m *Manager) LoadConfig(name string) (*puzzle.Config, error) {
	name = configID(name)

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format, _ := FormatOf(path)
	config, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// ListConfigs returns information about all valid configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := FormatOf(entry.Name())
		if !ok {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(id)
		if err != nil {
			// Skip invalid configs
			log.Debug("skipping config", "file", entry.Name(), "err", err)
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Format:      format,
			GridSize:    config.GridSize,
			Pieces:      len(config.Pieces),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *puzzle.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached configurations and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*puzzle.Config)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// ReloadConfig drops a configuration from the cache and reads it again
func (m *Manager) ReloadConfig(name string) error {
	m.mu.Lock()
	delete(m.configs, configID(name))
	m.mu.Unlock()

	_, err := m.LoadConfig(name)
	return err
}

// ValidateConfig checks a configuration against the puzzle rules
func (m *Manager) ValidateConfig(config *puzzle.Config) error {
	return puzzle.ValidateConfig(config)
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// SaveConfig validates a configuration and writes it as JSON
func (m *Manager) SaveConfig(name string, config *puzzle.Config) error {
	if err := puzzle.ValidateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	name = configID(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, name+".json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}

// loadDefaultConfig picks classic, then the first valid file, then the built-in puzzle
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		config = nil
		if configs, listErr := m.ListConfigs(); listErr == nil && len(configs) > 0 {
			config, _ = m.LoadConfig(configs[0].ConfigID)
		}
	}
	if config == nil {
		log.Info("no valid config files found, using built-in puzzle", "dir", m.configDir)
		config = puzzle.DefaultConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// resolve finds the file for a config id
func (m *Manager) resolve(id string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(m.configDir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// configID strips a known extension from a file or config name
func configID(name string) string {
	if _, ok := FormatOf(name); ok {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
