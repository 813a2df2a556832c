// Package toolstore persists the tool rows served by the configuration
// service.
//
// A [ToolRecord] carries the descriptor fields an administrator can see plus
// the two switches the catalog reads back: Enabled and Premium. Three
// [Store] implementations are provided:
//
//   - [MemoryStore] for tests and throwaway servers
//   - [BoltStore] for a single-node deployment backed by a local file
//   - [MongoStore] for the shared "tools" collection
//
// [Fetcher] adapts any Store to toolconfig.Fetcher so an in-process builder
// can read the same rows the HTTP service would return.
package toolstore
