// Package auth implements the credential store and the session issuer.
//
// Secrets are hashed with bcrypt (cost 10) before storage; the plaintext is
// never persisted or logged. Verification deliberately collapses "no such
// account" and "wrong secret" into one [shared.ErrInvalidCredentials] so the
// API cannot be used to enumerate accounts.
//
// Sessions are signed HS256 tokens carrying the account id, display name, and
// email, expiring 24 hours after issuance. Validity is determined entirely by
// signature and expiry: there is no server-side revocation, so a token keeps
// serving the claims it was issued with until it expires.
package auth
