// Package favorites stores the tools each user has marked as a favorite.
//
// Favorites are keyed by tool Name rather than ID or path, so a renamed tool
// drops out of every user's favorites. Lists come back in the order the
// favorites were added. Two stores are provided: [MemoryStore] for tests
// and single-process use, and [BoltStore] for a durable local file.
package favorites
