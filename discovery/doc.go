// Package discovery is the consumer facade over registry snapshots.
//
// It holds the latest snapshot built by a registry builder and answers
// the questions a catalog front end asks: which tools go on the home grid,
// what the sidebar looks like, which tools match a search, and which
// tools a user has marked as favorites.
//
// # Basic Usage
//
//	builder := registry.New(registry.Options{
//		Fetcher: client,
//		Modules: tools.Modules(),
//	})
//	disc, err := discovery.New(discovery.Options{Builder: builder})
//	if err != nil {
//		return err
//	}
//	defer disc.Close()
//
//	for _, section := range disc.Home(ctx) {
//		fmt.Println(section.Category.Name, len(section.Tools))
//	}
//
// # Refresh
//
// The builder never caches, so Discovery does. The first call that needs a
// snapshot builds one; [Discovery.Refresh] replaces it. Listeners added
// with [Discovery.OnRefresh] see every new snapshot.
//
// # Search
//
// Search defaults to a [search.BM25Searcher]. An empty query returns tools
// in registry order.
package discovery
