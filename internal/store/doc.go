// Package store implements the key-value storage every dashboard component reads and writes.
//
// The [Store] interface mirrors browser local storage: string keys, string values,
// synchronous Get/Set/Remove and no transactions across keys.
//
// Key Implementations:
//   - [SQLite] : Persistent storage in the kv_store table, with a write history in kv_history
//   - [Memory] : Map-backed storage for tests and throwaway sessions
//
// [GetJSON] and [SetJSON] layer typed values over the raw strings. Missing or malformed
// values are reported as absent so callers fall back to their defaults.
//
// Read-modify-write sequences spanning several calls are not atomic. Two processes sharing
// one database follow last-writer-wins.
package store
