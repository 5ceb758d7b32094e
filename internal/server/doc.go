// Package server contains the HTTP routing, middleware, and handlers for the
// music hub REST API.
//
// Each request is handled independently; there is no in-process shared state
// beyond the database pool and the catalog client. Handlers decode JSON,
// delegate to the repositories, credential store, session issuer, or catalog
// gateway, and translate domain errors to HTTP statuses in one place
// (errors.go): validation and duplicates map to 400, authentication failures
// to 401 with a generic message, missing or foreign-owned resources to 404,
// catalog failures and anything unhandled to 500 with internals logged but
// never returned.
package server
