// plugins/wordcount/wordcount.go
package wordcount

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// Stats summarizes a document.
type Stats struct {
	Blocks     int
	Words      int
	Characters int // Grapheme clusters
}

// Count computes the stats of d.
func Count(d document.Document) Stats {
	s := Stats{Blocks: d.Len()}
	for _, b := range d.Blocks() {
		s.Words += len(strings.Fields(b.Text()))
		s.Characters += uniseg.GraphemeClusterCount(b.Text())
	}
	return s
}

// WordCount keeps live document stats by listening to the event bus.
type WordCount struct {
	mu    sync.Mutex
	stats Stats
	api   plugin.EditorAPI
	subs  []event.SubscriptionID
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize counts the current document and subscribes to changes.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.set(Count(api.State().Document))

	p.subs = append(p.subs,
		api.Subscribe(event.TypeDocumentChanged, func(e event.Event) bool {
			if data, ok := e.Data.(event.DocumentChangedData); ok {
				p.set(Count(data.Document))
			}
			return false
		}),
		api.Subscribe(event.TypeDocumentLoaded, func(e event.Event) bool {
			if data, ok := e.Data.(event.DocumentLoadedData); ok {
				p.set(Count(data.Document))
			}
			return false
		}),
	)
	return nil
}

// Shutdown drops the event subscriptions.
func (p *WordCount) Shutdown() error {
	for _, id := range p.subs {
		p.api.Unsubscribe(id)
	}
	p.subs = nil
	return nil
}

// Stats returns the latest counts.
func (p *WordCount) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *WordCount) set(s Stats) {
	p.mu.Lock()
	p.stats = s
	p.mu.Unlock()
}
