// internal/plugin/manager.go
package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string // Registration order; plugins start in it and stop in reverse
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

func (m *Manager) list() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}

// InitializePlugins initializes every registered plugin. A failing plugin is
// logged and skipped; the failures are returned joined.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	plugins := m.list()
	logger.Infof("Plugin Manager: Initializing %d plugins...", len(plugins))

	var errs []error
	for _, p := range plugins {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("plugin %s: %w", p.Name(), err))
			continue
		}
		logger.DebugTagf("plugin", "Plugin Manager: Initialized plugin '%s'", p.Name())
	}
	return errors.Join(errs...)
}

// Start registers plugin and initializes it right away, for plugins added
// after InitializePlugins ran. A plugin that fails to initialize is removed.
func (m *Manager) Start(plugin Plugin, api EditorAPI) error {
	if err := m.Register(plugin); err != nil {
		return err
	}
	if err := plugin.Initialize(api); err != nil {
		m.remove(plugin.Name())
		return fmt.Errorf("plugin %s: %w", plugin.Name(), err)
	}
	logger.DebugTagf("plugin", "Plugin Manager: Started plugin '%s'", plugin.Name())
	return nil
}

func (m *Manager) remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.plugins, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// ShutdownPlugins calls Shutdown on all registered plugins, newest first.
func (m *Manager) ShutdownPlugins() error {
	plugins := m.list()
	logger.Infof("Plugin Manager: Shutting down %d plugins...", len(plugins))

	var errs []error
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("plugin %s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
