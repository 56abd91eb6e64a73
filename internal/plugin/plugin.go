// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/dispatcher"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
)

// EditorAPI is the part of an editing session plugins may use.
type EditorAPI interface {
	// --- Content (read-only) ---
	State() dispatcher.State
	Snapshot() document.RawContent

	// --- Editing ---
	ExecCommand(name command.Name) (bool, error)
	InsertText(text string) (bool, error)

	// --- Event Bus ---
	Subscribe(eventType event.Type, handler event.Handler) event.SubscriptionID
	Unsubscribe(id event.SubscriptionID)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the session closes.
	Shutdown() error
}
