package discovery

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/favorites"
	"github.com/jonwraymond/toolcatalog/registry"
	"github.com/jonwraymond/toolcatalog/search"
)

// Error values for discovery operations.
var (
	ErrNoBuilder         = errors.New("discovery: builder is required")
	ErrFavoritesDisabled = errors.New("discovery: no favorites store configured")
)

// Builder produces registry snapshots. *registry.Builder implements it.
type Builder interface {
	Build(ctx context.Context) *registry.Snapshot
}

// Searcher ranks tools against a query. *search.BM25Searcher implements it.
type Searcher interface {
	Search(query string, limit int, tools []registry.Tool) ([]search.Result, error)
}

// Options configures a Discovery instance.
type Options struct {
	// Builder is required.
	Builder Builder

	// Searcher is the search implementation. If nil, uses BM25Searcher.
	Searcher Searcher

	// BM25Config configures the default searcher. Ignored when Searcher is
	// set.
	BM25Config search.BM25Config

	// Favorites enables Favorites lookups.
	Favorites favorites.Store

	Logger *zap.Logger
}

// Section is one category with its tools in registry order.
type Section struct {
	Category catalog.CategoryDescriptor
	Tools    []registry.Tool
}

// RefreshListener is called with each newly built snapshot.
type RefreshListener func(*registry.Snapshot)

// Discovery holds the current snapshot and answers catalog queries.
type Discovery struct {
	builder   Builder
	searcher  Searcher
	ownSearch *search.BM25Searcher
	favorites favorites.Store
	logger    *zap.Logger

	mu        sync.RWMutex
	snap      *registry.Snapshot
	buildMu   sync.Mutex
	listeners map[int]RefreshListener
	nextID    int
}

// New creates a new Discovery instance with the given options.
func New(opts Options) (*Discovery, error) {
	if opts.Builder == nil {
		return nil, ErrNoBuilder
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Discovery{
		builder:   opts.Builder,
		favorites: opts.Favorites,
		logger:    logger.Named("discovery"),
		listeners: make(map[int]RefreshListener),
	}
	if opts.Searcher != nil {
		d.searcher = opts.Searcher
	} else {
		d.ownSearch = search.NewBM25Searcher(opts.BM25Config)
		d.searcher = d.ownSearch
	}
	return d, nil
}

// Refresh builds a new snapshot, makes it current and returns it.
func (d *Discovery) Refresh(ctx context.Context) *registry.Snapshot {
	d.buildMu.Lock()
	defer d.buildMu.Unlock()
	return d.refreshLocked(ctx)
}

func (d *Discovery) refreshLocked(ctx context.Context) *registry.Snapshot {
	snap := d.builder.Build(ctx)

	d.mu.Lock()
	d.snap = snap
	listeners := make([]RefreshListener, 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()

	d.logger.Debug("snapshot refreshed",
		zap.String("status", string(snap.Status())),
		zap.Int("tools", snap.Len()),
	)
	for _, l := range listeners {
		l(snap)
	}
	return snap
}

// Snapshot returns the current snapshot, building one on first use.
func (d *Discovery) Snapshot(ctx context.Context) *registry.Snapshot {
	d.mu.RLock()
	snap := d.snap
	d.mu.RUnlock()
	if snap != nil {
		return snap
	}

	d.buildMu.Lock()
	defer d.buildMu.Unlock()
	d.mu.RLock()
	snap = d.snap
	d.mu.RUnlock()
	if snap != nil {
		return snap
	}
	// The memoized snapshot outlives the caller, so its build must not be
	// cut short by the caller's cancellation.
	return d.refreshLocked(context.WithoutCancel(ctx))
}

// OnRefresh registers a listener for new snapshots. Returns an
// unsubscribe function.
func (d *Discovery) OnRefresh(listener RefreshListener) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = listener
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Home returns one section per known category that has at least one tool,
// in category order.
func (d *Discovery) Home(ctx context.Context) []Section {
	var out []Section
	for _, section := range d.Sidebar(ctx) {
		if len(section.Tools) > 0 {
			out = append(out, section)
		}
	}
	return out
}

// Sidebar returns one section per known category, including empty ones.
func (d *Discovery) Sidebar(ctx context.Context) []Section {
	snap := d.Snapshot(ctx)
	cats := catalog.Categories()
	out := make([]Section, len(cats))
	for i, cat := range cats {
		out[i] = Section{Category: cat, Tools: snap.ToolsByCategory(cat.ID)}
	}
	return out
}

// Search ranks the current snapshot's tools against query. An empty query
// lists tools in registry order. A limit <= 0 means no limit.
func (d *Discovery) Search(ctx context.Context, query string, limit int) (Results, error) {
	snap := d.Snapshot(ctx)
	hits, err := d.searcher.Search(query, limit, snap.Tools())
	if err != nil {
		return nil, err
	}

	scoreType := ScoreBM25
	if strings.TrimSpace(query) == "" {
		scoreType = ScoreNone
	}
	results := make(Results, len(hits))
	for i, hit := range hits {
		results[i] = Result{Tool: hit.Tool, Score: hit.Score, ScoreType: scoreType}
	}
	return results, nil
}

// Favorites returns the current tools whose Name the user has favorited,
// in registry order. Favorites naming tools that are not in the snapshot
// are skipped.
func (d *Discovery) Favorites(ctx context.Context, user string) ([]registry.Tool, error) {
	if d.favorites == nil {
		return nil, ErrFavoritesDisabled
	}
	names, err := d.favorites.List(ctx, user)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	out := []registry.Tool{}
	for _, tool := range d.Snapshot(ctx).Tools() {
		if _, ok := wanted[tool.Name]; ok {
			out = append(out, tool)
		}
	}
	return out, nil
}

// Close releases the default searcher's index.
func (d *Discovery) Close() error {
	if d.ownSearch != nil {
		return d.ownSearch.Close()
	}
	return nil
}
