// Package clipboard provides the plain-text clipboard used for copy and paste.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the OS clipboard.
type System struct{}

func (System) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("system clipboard read: %w", err)
	}
	return text, nil
}

func (System) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	return nil
}

// Memory is an in-process register.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// New returns the system clipboard when requested and supported, else a
// Memory register.
func New(useSystem bool) Clipboard {
	if !useSystem {
		return &Memory{}
	}
	if clipboard.Unsupported {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		return &Memory{}
	}
	return System{}
}
