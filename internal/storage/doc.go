// Package storage provides the BBolt database interface for the seedpass
// profile store.
//
// Database structure uses two buckets:
//   - config: store version and timestamps
//   - profiles: per-service settings keyed by normalised service name
//
// A profile only records how to derive a password (length and scheme).
// Master secrets and derived passwords are never written here, so the
// database needs no encryption and can be read without a secret.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
