// Package cache keeps the last fetched listings in a local SQLite file so
// browse commands still answer when the backend is unreachable. Entries
// expire after DefaultTTL. The cache holds listings only, never key material
// or tokens.
package cache
