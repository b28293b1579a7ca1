// Package sqlite provides the SQLite-backed cybermod document store.
//
// Actors are stored as scalar columns. Items are stored as one JSON
// document per row so host-specific fields survive round trips. Every patch
// runs in its own transaction.
package sqlite
