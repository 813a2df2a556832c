package search

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/registry"
)

// ErrClosed is returned by Search after Close.
var ErrClosed = errors.New("searcher closed")

// BM25Config tunes field boosts and indexing limits. Zero values select the
// defaults.
type BM25Config struct {
	NameBoost     float64
	CategoryBoost float64
	// MaxDocs caps the number of tools indexed (0 = unlimited).
	MaxDocs int
	// MaxDocTextLen truncates descriptions before indexing (0 = unlimited).
	MaxDocTextLen int
}

const (
	defaultNameBoost     = 3
	defaultCategoryBoost = 2
)

func (c BM25Config) withDefaults() BM25Config {
	if c.NameBoost <= 0 {
		c.NameBoost = defaultNameBoost
	}
	if c.CategoryBoost <= 0 {
		c.CategoryBoost = defaultCategoryBoost
	}
	return c
}

// Result is one ranked tool.
type Result struct {
	Tool  registry.Tool
	Score float64
}

// BM25Searcher ranks snapshot tools against a free-text query.
type BM25Searcher struct {
	cfg BM25Config

	mu          sync.RWMutex
	idx         bleve.Index
	fingerprint string
	indexed     []registry.Tool
	closed      bool
}

// NewBM25Searcher creates a searcher. The index is built lazily on the first
// non-empty query.
func NewBM25Searcher(cfg BM25Config) *BM25Searcher {
	return &BM25Searcher{cfg: cfg.withDefaults()}
}

type toolDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ID          string `json:"id"`
}

// Search returns up to limit tools matching query. A limit <= 0 means no
// limit.
func (s *BM25Searcher) Search(q string, limit int, tools []registry.Tool) ([]Result, error) {
	if s.cfg.MaxDocs > 0 && len(tools) > s.cfg.MaxDocs {
		tools = tools[:s.cfg.MaxDocs]
	}
	if limit <= 0 || limit > len(tools) {
		limit = len(tools)
	}

	q = strings.TrimSpace(q)
	if q == "" {
		if s.isClosed() {
			return nil, ErrClosed
		}
		out := make([]Result, limit)
		for i := range out {
			out[i] = Result{Tool: tools[i]}
		}
		return out, nil
	}

	if len(tools) == 0 {
		return []Result{}, nil
	}

	var (
		indexed []registry.Tool
		res     *bleve.SearchResult
	)
	for res == nil {
		idx, docs, err := s.ensureIndex(tools)
		if err != nil {
			return nil, err
		}
		s.mu.RLock()
		if s.closed {
			s.mu.RUnlock()
			return nil, ErrClosed
		}
		if s.idx != idx {
			// Rebuilt for another caller's tool set; index ours again.
			s.mu.RUnlock()
			continue
		}
		req := bleve.NewSearchRequestOptions(s.buildQuery(q), len(docs), 0, false)
		res, err = idx.Search(req)
		s.mu.RUnlock()
		if err != nil {
			return nil, err
		}
		indexed = docs
	}

	type hit struct {
		pos   int
		score float64
	}
	hits := make([]hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		pos, err := strconv.Atoi(h.ID)
		if err != nil || pos < 0 || pos >= len(indexed) {
			continue
		}
		hits = append(hits, hit{pos: pos, score: h.Score})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = Result{Tool: indexed[h.pos], Score: h.score}
	}
	return out, nil
}

func (s *BM25Searcher) buildQuery(q string) query.Query {
	var clauses []query.Query

	field := func(name string, boost float64) {
		m := bleve.NewMatchQuery(q)
		m.SetField(name)
		m.SetBoost(boost)
		clauses = append(clauses, m)
	}
	field("name", s.cfg.NameBoost)
	field("description", 1)
	field("category", s.cfg.CategoryBoost)
	field("id", 1)

	// Type-ahead: the last word may be incomplete.
	words := strings.Fields(strings.ToLower(q))
	if last := words[len(words)-1]; len(last) >= 2 {
		p := bleve.NewPrefixQuery(last)
		p.SetField("name")
		p.SetBoost(s.cfg.NameBoost / 2)
		clauses = append(clauses, p)
	}

	return bleve.NewDisjunctionQuery(clauses...)
}

// ensureIndex returns an index matching tools, rebuilding it when the
// fingerprint changed.
func (s *BM25Searcher) ensureIndex(tools []registry.Tool) (bleve.Index, []registry.Tool, error) {
	fp := computeFingerprint(tools)

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, nil, ErrClosed
	}
	if s.idx != nil && s.fingerprint == fp {
		idx, indexed := s.idx, s.indexed
		s.mu.RUnlock()
		return idx, indexed, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, ErrClosed
	}
	if s.idx != nil && s.fingerprint == fp {
		return s.idx, s.indexed, nil
	}

	idx, err := bleve.NewMemOnly(newIndexMapping())
	if err != nil {
		return nil, nil, err
	}
	batch := idx.NewBatch()
	for i, tool := range tools {
		if err := batch.Index(strconv.Itoa(i), s.toDoc(tool)); err != nil {
			_ = idx.Close()
			return nil, nil, err
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, nil, err
	}

	if s.idx != nil {
		_ = s.idx.Close()
	}
	s.idx = idx
	s.fingerprint = fp
	s.indexed = append([]registry.Tool(nil), tools...)
	return s.idx, s.indexed, nil
}

func (s *BM25Searcher) toDoc(tool registry.Tool) toolDoc {
	desc := tool.Description
	if s.cfg.MaxDocTextLen > 0 && len(desc) > s.cfg.MaxDocTextLen {
		desc = truncateUTF8(desc, s.cfg.MaxDocTextLen)
	}
	category := tool.Category
	if c, ok := catalog.CategoryByID(tool.Category); ok {
		category += " " + c.Name
	}
	return toolDoc{
		Name:        tool.Name,
		Description: desc,
		Category:    category,
		ID:          tool.ID,
	}
}

func newIndexMapping() *mapping.IndexMappingImpl {
	text := bleve.NewTextFieldMapping()
	text.Store = false
	text.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("description", text)
	doc.AddFieldMappingsAt("category", text)
	doc.AddFieldMappingsAt("id", text)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func (s *BM25Searcher) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Close releases the cached index. Further searches return ErrClosed.
func (s *BM25Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	s.indexed = nil
	return err
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
