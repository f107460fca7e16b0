// Package client contains the Resource Client for the user management
// backend.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic API contracts (UserAPI, AddressAPI and the combined
//     Client) with one method per resource and verb.
//  2. A concrete JSON-over-HTTP implementation (HTTPClient) bound to a base
//     URL such as http://localhost:9090/api.
//
// Every call is exactly one round trip: no retries, no caching, no batching.
//
// # Error Handling
//
// Failures are reported as *RequestFailure carrying the HTTP status and the
// backend's structured "error" message when present. Transport failures have
// StatusCode 0 and match common.ErrUnavailable; 404 responses match
// common.ErrNotFound:
//
//	users, err := c.ListUsers(ctx)
//	var rf *client.RequestFailure
//	if errors.As(err, &rf) && rf.Message != "" {
//		fmt.Println(rf.Message)
//	}
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context; the client adds no timeout of its own.
package client
