package registry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/toolconfig"
)

// Metrics receives build observations. telemetry.PrometheusMetrics
// implements it.
type Metrics interface {
	ObserveBuild(status Status, tools int, duration time.Duration)
}

// Call outcomes reported to CallMetrics.
const (
	CallOK        = "ok"
	CallInvalid   = "invalid"
	CallForbidden = "forbidden"
	CallError     = "error"
)

// CallMetrics receives tool invocation observations.
type CallMetrics interface {
	ObserveCall(toolID, outcome string, duration time.Duration)
}

// Options configures a Builder.
type Options struct {
	// Fetcher supplies the remote configuration. A nil Fetcher behaves like
	// an unreachable service.
	Fetcher toolconfig.Fetcher
	// Modules is the static tool list, in registration order.
	Modules []catalog.Module
	Logger  *zap.Logger
	Metrics Metrics
	// Now overrides the clock (useful for tests).
	Now func() time.Time
}

// Builder produces registry snapshots.
type Builder struct {
	fetcher toolconfig.Fetcher
	modules []catalog.Module
	logger  *zap.Logger
	metrics Metrics
	now     func() time.Time
}

// New creates a Builder. The module list is copied.
func New(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	modules := make([]catalog.Module, len(opts.Modules))
	copy(modules, opts.Modules)

	return &Builder{
		fetcher: opts.Fetcher,
		modules: modules,
		logger:  logger.Named("registry"),
		metrics: opts.Metrics,
		now:     now,
	}
}

// Build fetches the remote configuration and returns a fresh snapshot. It
// never fails; see the package documentation for the degraded case.
func (b *Builder) Build(ctx context.Context) *Snapshot {
	start := b.now()
	status := StatusOK
	var diags []Diagnostic

	rows, err := b.fetch(ctx)
	if err != nil {
		status = StatusDegraded
		rows = nil
		diags = append(diags, b.report(Diagnostic{
			Kind:    DiagFetchFailed,
			Index:   -1,
			Message: err.Error(),
		}))
	}

	enabled := toolconfig.EnabledPaths(rows)
	premium := premiumByPath(rows)

	seen := make(map[string]int, len(b.modules))
	tools := make([]Tool, 0, len(b.modules))
	for i, mod := range b.modules {
		if err := mod.Validate(); err != nil {
			diags = append(diags, b.report(moduleDiagnostic(DiagInvalidModule, i, mod, err.Error())))
			continue
		}

		meta := *mod.Meta
		if first, dup := seen[meta.Path]; dup {
			diags = append(diags, b.report(moduleDiagnostic(DiagDuplicatePath, i, mod,
				fmt.Sprintf("path already registered by module %d", first))))
			continue
		}
		seen[meta.Path] = i

		if _, ok := enabled[meta.Path]; !ok {
			continue
		}

		if mod.CategoryMismatch() {
			diags = append(diags, b.report(moduleDiagnostic(DiagCategoryMismatch, i, mod,
				fmt.Sprintf("category %q differs from group %q", meta.Category, mod.Group))))
		}
		if !catalog.IsKnownCategory(meta.Category) {
			diags = append(diags, b.report(moduleDiagnostic(DiagUnknownCategory, i, mod,
				fmt.Sprintf("category %q is not a known category", meta.Category))))
		}

		tools = append(tools, Tool{
			ToolDescriptor: meta,
			Premium:        premium[meta.Path],
			Factory:        mod.Factory,
			Input:          mod.Input,
		})
	}

	SortTools(tools)

	snap := newSnapshot(tools, status, diags, start)
	if b.metrics != nil {
		b.metrics.ObserveBuild(status, len(tools), b.now().Sub(start))
	}
	b.logger.Debug("registry built",
		zap.String("status", string(status)),
		zap.Int("tools", len(tools)),
		zap.Int("modules", len(b.modules)),
		zap.Int("diagnostics", len(diags)),
	)
	return snap
}

func (b *Builder) fetch(ctx context.Context) ([]toolconfig.RemoteToolConfig, error) {
	if b.fetcher == nil {
		return nil, fmt.Errorf("no tool config fetcher configured")
	}
	return b.fetcher.Fetch(ctx)
}

func (b *Builder) report(d Diagnostic) Diagnostic {
	b.logger.Warn("registry diagnostic",
		zap.String("kind", string(d.Kind)),
		zap.Int("index", d.Index),
		zap.String("tool", d.ToolID),
		zap.String("path", d.Path),
		zap.String("message", d.Message),
	)
	return d
}

func moduleDiagnostic(kind DiagnosticKind, index int, mod catalog.Module, msg string) Diagnostic {
	d := Diagnostic{Kind: kind, Index: index, Message: msg}
	if mod.Meta != nil {
		d.ToolID = mod.Meta.ID
		d.Path = mod.Meta.Path
	}
	return d
}

// premiumByPath takes the premium flag from the first row carrying each
// path, enabled or not.
func premiumByPath(rows []toolconfig.RemoteToolConfig) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		if _, ok := out[row.Path]; ok {
			continue
		}
		out[row.Path] = row.Premium
	}
	return out
}

// SortTools orders tools by Order ascending, then by Name using a
// case-sensitive byte comparison. The sort is stable.
func SortTools(tools []Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		if tools[i].Order != tools[j].Order {
			return tools[i].Order < tools[j].Order
		}
		return tools[i].Name < tools[j].Name
	})
}
