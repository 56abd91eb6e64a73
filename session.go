package tidemark

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/core/cursor"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/plugins/wordcount"
)

type (
	Plugin          = plugin.Plugin
	EditorAPI       = plugin.EditorAPI
	Event           = event.Event
	EventType       = event.Type
	EventHandler    = event.Handler
	SubscriptionID  = event.SubscriptionID
	Motion          = cursor.Motion
	Span            = theme.Span
	WordStats       = wordcount.Stats
	Clipboard       = clipboard.Clipboard
	MemoryClipboard = clipboard.Memory
	SessionOption   = core.Option
)

// Events published by a Session.
const (
	EventDocumentChanged  = event.TypeDocumentChanged
	EventDocumentLoaded   = event.TypeDocumentLoaded
	EventSelectionChanged = event.TypeSelectionChanged
	EventCommandHandled   = event.TypeCommandHandled
	EventKeyPressed       = event.TypeKeyPressed
)

// Caret motions for Session.Move.
const (
	MoveLeft      = cursor.Left
	MoveRight     = cursor.Right
	MoveUp        = cursor.Up
	MoveDown      = cursor.Down
	MoveLineStart = cursor.LineStart
	MoveLineEnd   = cursor.LineEnd
	MoveDocStart  = cursor.DocStart
	MoveDocEnd    = cursor.DocEnd
)

// WithClipboard replaces the clipboard chosen from config.
var WithClipboard = core.WithClipboard

// Session is an editing session built from a config file: key bindings,
// undo history, clipboard, styles, events and plugins around one document.
// The embedded editor carries the editing methods.
type Session struct {
	*core.Editor

	plugins  *plugin.Manager
	words    *wordcount.WordCount
	closeLog io.Closer
}

// NewSession loads the config at configPath (empty means the user config
// directory), sets up logging and starts the built-in plugins.
func NewSession(configPath string, opts ...SessionOption) (*Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	closer, err := logger.Setup(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		Editor:   core.NewEditor(cfg, opts...),
		plugins:  plugin.NewManager(),
		words:    wordcount.New(),
		closeLog: closer,
	}
	if err := s.plugins.Register(s.words); err != nil {
		closer.Close()
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := s.plugins.InitializePlugins(s.Editor); err != nil {
		logger.Warnf("Session: %v", err)
	}
	logger.Infof("Session started")
	return s, nil
}

// Use adds a plugin to a running session.
func (s *Session) Use(p Plugin) error {
	return s.plugins.Start(p, s.Editor)
}

// WordStats returns the current block, word and character counts.
func (s *Session) WordStats() WordStats {
	return s.words.Stats()
}

// Close shuts the plugins down and releases the log file.
func (s *Session) Close() error {
	err := s.plugins.ShutdownPlugins()
	logger.Infof("Session closed")
	logger.Init(slog.LevelInfo, nil)
	return errors.Join(err, s.closeLog.Close())
}
