// Package registry builds the tool registry: the ordered, filtered view of
// the compiled-in tool modules that the remote configuration service
// currently enables.
//
// A Builder combines two sources:
//   - the static module list (catalog.Module values, usually tools.Modules())
//   - the remote configuration fetched through a toolconfig.Fetcher
//
// Build fetches the configuration once, drops invalid, duplicate and
// disabled modules, attaches the premium flag and sorts the survivors by
// (Order, Name). The result is an immutable Snapshot exposing the tool list,
// the route descriptors and a per-category filter.
//
// Build never returns an error. When the configuration cannot be fetched the
// snapshot is empty and reports StatusDegraded, so callers can tell "nothing
// enabled" apart from "service unreachable". Every dropped or suspicious
// module is recorded as a Diagnostic and logged at warn level.
//
// The builder keeps no state between builds. Callers that want to reuse a
// snapshot hold on to it themselves:
//
//	b := registry.New(registry.Options{
//	    Fetcher: client,
//	    Modules: tools.Modules(),
//	    Logger:  logger,
//	})
//	snap := b.Build(ctx)
//	for _, tool := range snap.ToolsByCategory("crypto") {
//	    fmt.Println(tool.Name, tool.Path)
//	}
//
// Snapshot.Handler mounts every route as POST <path>. The JSON object body is
// passed to the tool handler. Premium tools answer 403 unless
// HandlerOptions.PremiumAccess admits the request; BearerTokenAccess checks
// the bearer token against configured premium tokens. Tool.Input carries the
// argument schema used by the MCP projection. Options.Metrics and HandlerOptions.Metrics (CallMetrics)
// are optional hooks for build and call telemetry.
//
// Builder and Snapshot are safe for concurrent use. Concurrent builds are
// independent; ordering between them is the caller's concern.
package registry
