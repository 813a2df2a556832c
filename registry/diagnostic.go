package registry

// DiagnosticKind classifies a build diagnostic.
type DiagnosticKind string

const (
	DiagFetchFailed      DiagnosticKind = "fetch_failed"
	DiagInvalidModule    DiagnosticKind = "invalid_module"
	DiagDuplicatePath    DiagnosticKind = "duplicate_path"
	DiagCategoryMismatch DiagnosticKind = "category_mismatch"
	DiagUnknownCategory  DiagnosticKind = "unknown_category"
)

// Diagnostic records one problem found while building a snapshot.
type Diagnostic struct {
	Kind    DiagnosticKind
	Index   int // position in the module list, -1 when not module specific
	ToolID  string
	Path    string
	Message string
}

// FilterDiagnostics returns the diagnostics of the given kind.
func FilterDiagnostics(diags []Diagnostic, kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
