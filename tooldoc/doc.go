// Package tooldoc renders tiered documentation for tools in a built
// registry snapshot. It delivers summary, schema and full detail without
// pulling long content into output until explicitly requested.
//
// # Documentation Tiers
//
// Summary: the tool's identity plus a one-line description derived from
// the first sentence of its description, capped at MaxSummaryLen.
//
// Schema: everything in Summary plus the input schema and the derived
// argument list (name, type, required flag, allowed values).
//
// Full: everything in Schema plus notes (premium access, category
// membership) and an example argument object built from the schema.
//
// # Error Handling
//
// ErrInvalidDetail is returned for an unknown DetailLevel. Use errors.Is.
//
// # Usage
//
//	snap := builder.Build(ctx)
//	tool, _ := snap.ToolByID("hash-text")
//	doc, err := tooldoc.Describe(tool, tooldoc.DetailFull)
package tooldoc
