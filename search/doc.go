// Package search provides free-text search over the tools of a registry
// snapshot, backing the header search box of the catalog.
//
// # Usage
//
// The primary type is [BM25Searcher], which ranks tools with an in-memory
// Bleve index:
//
//	s := search.NewBM25Searcher(search.BM25Config{})
//	defer s.Close()
//	results, err := s.Search("hash", 10, snapshot.Tools())
//
// # Configuration
//
// [BM25Config] allows customization of field boosts and safety limits:
//
//	cfg := search.BM25Config{
//	    NameBoost:     3,    // Boost name matches (default: 3)
//	    CategoryBoost: 2,    // Boost category matches (default: 2)
//	    MaxDocs:       1000, // Limit tools to index (0 = unlimited)
//	    MaxDocTextLen: 5000, // Truncate long descriptions (0 = unlimited)
//	}
//
// # Thread Safety
//
// BM25Searcher is safe for concurrent use. The Bleve index is cached under a
// fingerprint of the tool list and rebuilt only when the tools change, which
// in practice means once per registry build.
//
// # Behavior
//
// Empty queries return the first N tools in registry order. Non-empty
// queries rank by score with ties broken by registry order.
package search
