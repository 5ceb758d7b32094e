// Package models defines domain entities and transfer objects for the music hub service.
//
// The package contains two categories of types:
//
// 1. Persistent entities, backed by the database:
//   - [Account] : registered identities with a hashed secret
//   - [Collection] : owned, ordered groupings of track references
//   - [Track] : globally deduplicated catalog records keyed by Spotify track id
//
// 2. Transfer objects:
//   - [TrackDescriptor] : the shape of a catalog search result, also the input
//     for adding a track to a collection
//   - [PublicAccount] : the account fields exposed to clients
//
// Validation lives with the types it guards. The persistence layer calls
// Validate before every insert or update.
package models
