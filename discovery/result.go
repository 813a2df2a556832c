package discovery

import (
	"github.com/jonwraymond/toolcatalog/registry"
)

// ScoreType indicates the source of a search result's score.
type ScoreType string

const (
	// ScoreBM25 indicates the score came from lexical search.
	ScoreBM25 ScoreType = "bm25"

	// ScoreNone marks results listed without a query, in registry order.
	ScoreNone ScoreType = "none"
)

// Result is one search hit.
type Result struct {
	Tool registry.Tool

	// Score is the relevance score; zero for ScoreNone.
	Score     float64
	ScoreType ScoreType
}

// Results is a slice of Result with helper methods.
type Results []Result

// IDs returns the tool IDs.
func (r Results) IDs() []string {
	ids := make([]string, len(r))
	for i, result := range r {
		ids[i] = result.Tool.ID
	}
	return ids
}

// Paths returns the tool paths.
func (r Results) Paths() []string {
	paths := make([]string, len(r))
	for i, result := range r {
		paths[i] = result.Tool.Path
	}
	return paths
}

// Tools returns the tools without scores.
func (r Results) Tools() []registry.Tool {
	tools := make([]registry.Tool, len(r))
	for i, result := range r {
		tools[i] = result.Tool
	}
	return tools
}

// FilterByCategory returns results in the given category.
func (r Results) FilterByCategory(category string) Results {
	var filtered Results
	for _, result := range r {
		if result.Tool.Category == category {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterByMinScore returns results with score >= minScore.
func (r Results) FilterByMinScore(minScore float64) Results {
	var filtered Results
	for _, result := range r {
		if result.Score >= minScore {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterPremium returns results whose premium flag equals premium.
func (r Results) FilterPremium(premium bool) Results {
	var filtered Results
	for _, result := range r {
		if result.Tool.Premium == premium {
			filtered = append(filtered, result)
		}
	}
	return filtered
}
