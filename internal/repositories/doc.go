// Package repositories provides the persistence layer for accounts,
// collections, and tracks.
//
// All repositories share a single [database/sql] connection pool over SQLite.
// Collection operations are scoped by owner id on every query; a collection
// that exists but belongs to another account is indistinguishable from one
// that does not exist ([shared.ErrNotFound] either way).
//
// AddTrack resolves or creates the track and appends the membership row inside
// one transaction, so two concurrent adds of the same track cannot produce a
// duplicate membership or a duplicate track record.
package repositories
