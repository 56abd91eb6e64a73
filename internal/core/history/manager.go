package history

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

const DefaultMaxHistory = 100

// Manager handles the undo/redo stack. It stores snapshots, so undoing is
// just stepping back to the previous one.
type Manager struct {
	changes      []Change // changes[0] is the baseline snapshot
	currentIndex int      // Index of the snapshot currently shown
	maxHistory   int
	coalesce     bool
	mutex        sync.Mutex
}

// NewManager creates a history manager rooted at the given baseline snapshot.
// With coalesce set, consecutive InsertText changes share one undo step.
func NewManager(baseline Change, maxHistory int, coalesce bool) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	baseline.Kind = KindNone
	changes := make([]Change, 1, maxHistory+1)
	changes[0] = baseline
	return &Manager{
		changes:    changes,
		maxHistory: maxHistory,
		coalesce:   coalesce,
	}
}

// Push adds a new change, clearing any redo history. A change whose
// snapshot equals the current one is not recorded.
func (m *Manager) Push(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// A caret-only style override leaves the snapshot as it was.
	if cur := m.changes[m.currentIndex]; cur.Document.Equal(change.Document) && cur.Selection == change.Selection {
		logger.DebugTagf("history", "History: Skipped %v, snapshot unchanged", change.Kind)
		return
	}

	if m.currentIndex < len(m.changes)-1 {
		m.changes = m.changes[:m.currentIndex+1]
	}

	top := m.changes[m.currentIndex]
	if m.coalesce && m.currentIndex > 0 && change.Kind == InsertText && top.Kind == InsertText {
		m.changes[m.currentIndex] = change
		logger.DebugTagf("history", "History: Coalesced %v into index %d", change.Kind, m.currentIndex)
		return
	}

	m.changes = append(m.changes, change)

	// Keep the baseline slot: the oldest retained change becomes the new baseline.
	if len(m.changes)-1 > m.maxHistory {
		drop := len(m.changes) - 1 - m.maxHistory
		m.changes = append(m.changes[:0], m.changes[drop:]...)
		m.changes[0].Kind = KindNone
	}
	m.currentIndex = len(m.changes) - 1

	logger.DebugTagf("history", "History: Recorded change %v. Index: %d, Count: %d", change.Kind, m.currentIndex, len(m.changes)-1)
}

// PushAll records several changes in order.
func (m *Manager) PushAll(changes []Change) {
	for _, c := range changes {
		m.Push(c)
	}
}

// Undo steps back one change and returns the snapshot to restore.
func (m *Manager) Undo() (Change, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return Change{}, false
	}
	undone := m.changes[m.currentIndex].Kind
	m.currentIndex--
	logger.DebugTagf("history", "History: Undid %v, now at index %d", undone, m.currentIndex)
	return m.changes[m.currentIndex], true
}

// Redo reapplies the last undone change and returns its snapshot.
func (m *Manager) Redo() (Change, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes)-1 {
		logger.DebugTagf("history", "History: Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return Change{}, false
	}
	m.currentIndex++
	logger.DebugTagf("history", "History: Redid %v, now at index %d", m.changes[m.currentIndex].Kind, m.currentIndex)
	return m.changes[m.currentIndex], true
}

// Clear resets the history to a new baseline. Call this after loading content.
func (m *Manager) Clear(baseline Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	baseline.Kind = KindNone
	m.changes = append(m.changes[:0], baseline)
	m.currentIndex = 0
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)-1
}

// Len returns the number of recorded changes, excluding the baseline.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.changes) - 1
}
