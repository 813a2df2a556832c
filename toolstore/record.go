package toolstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonwraymond/toolcatalog/toolconfig"
)

// ToolRecord is one persisted tool row.
type ToolRecord struct {
	ID string `json:"id" yaml:"id" bson:"_id"`
	// ToolID is the public identifier; it defaults to ID.
	ToolID      string `json:"toolId" yaml:"toolId" bson:"toolId"`
	Name        string `json:"name" yaml:"name" bson:"name"`
	Description string `json:"description" yaml:"description" bson:"description"`
	Category    string `json:"category" yaml:"category" bson:"category"`
	Path        string `json:"path" yaml:"path" bson:"path"`
	Order       int    `json:"order" yaml:"order" bson:"order"`
	Enabled     bool   `json:"enabled" yaml:"enabled" bson:"enabled"`
	Premium     bool   `json:"premium" yaml:"premium" bson:"premium"`
}

// Store defines tool record persistence.
type Store interface {
	// List returns every record ordered by (Order, Name).
	List(ctx context.Context) ([]ToolRecord, error)
	// Get returns the record with the given ID.
	Get(ctx context.Context, id string) (ToolRecord, error)
	// Create stores a new record, assigning an ID when empty.
	Create(ctx context.Context, rec ToolRecord) (ToolRecord, error)
	// Toggle updates the switches that are non-nil and returns the result.
	Toggle(ctx context.Context, id string, enabled, premium *bool) (ToolRecord, error)
	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) error
}

// prepare validates rec and fills in generated fields.
func prepare(rec ToolRecord) (ToolRecord, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Path = strings.TrimSpace(rec.Path)
	if rec.Name == "" {
		return ToolRecord{}, fmt.Errorf("%w: name is required", ErrInvalidRecord)
	}
	if !strings.HasPrefix(rec.Path, "/") {
		return ToolRecord{}, fmt.Errorf("%w: path must start with /", ErrInvalidRecord)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ToolID == "" {
		rec.ToolID = rec.ID
	}
	return rec, nil
}

func applyToggle(rec *ToolRecord, enabled, premium *bool) {
	if enabled != nil {
		rec.Enabled = *enabled
	}
	if premium != nil {
		rec.Premium = *premium
	}
}

func sortRecords(recs []ToolRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Order != recs[j].Order {
			return recs[i].Order < recs[j].Order
		}
		if recs[i].Name != recs[j].Name {
			return recs[i].Name < recs[j].Name
		}
		return recs[i].ID < recs[j].ID
	})
}

// Fetcher exposes a Store as a toolconfig.Fetcher.
func Fetcher(s Store) toolconfig.Fetcher {
	return toolconfig.FetcherFunc(func(ctx context.Context) ([]toolconfig.RemoteToolConfig, error) {
		recs, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]toolconfig.RemoteToolConfig, len(recs))
		for i, rec := range recs {
			rows[i] = toolconfig.RemoteToolConfig{
				Path:    rec.Path,
				Enabled: rec.Enabled,
				Premium: rec.Premium,
			}
		}
		return rows, nil
	})
}
