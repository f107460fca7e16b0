// Package common contains shared constants and sentinel errors used across
// the admin client components.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request
// correlation id on outbound calls.
const RequestIDHeaderName = "X-Request-ID"

// DefaultAPIBaseURL is the local development backend.
const DefaultAPIBaseURL = "http://localhost:9090/api"
