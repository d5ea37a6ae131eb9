// Package cache is the explicit TTL cache that sits between the dashboard
// and its data sources.
//
// Entries are keyed by operation name plus parameters and stored as JSON
// bytes, so a cache hit decodes exactly what a miss would have produced.
// Failed loads are never stored; the next call retries the source.
//
// Two stores are provided: MemoryStore for a single process and RedisStore
// for sharing one cache between the web server and CLI runs.
package cache
