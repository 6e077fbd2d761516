// Package client contains the HTTP transport for the codepad API.
//
// # Overview
//
//  1. Narrow API contracts (AuthAPI, ProfileAPI, WorkspaceAPI, FileAPI,
//     ExecAPI, AdminAPI) combined into Client, so each consumer depends only
//     on the calls it makes.
//  2. HTTPClient, the REST implementation. It reads the bearer credential
//     from a TokenSource on every request; an empty token sends the request
//     unauthenticated.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations, OpenStore)
//     for the SQLite and bbolt metadata stores.
//
// # Error Handling
//
// Every failure is mapped to a sentinel matched with errors.Is:
// ErrUnavailable (transport), ErrUnauthorized (401/403), ErrNotFound (404),
// ErrValidation (422). Other non-2xx statuses yield an *APIError. Both
// *APIError and *TransportError carry the underlying details.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All calls take a context.Context;
// cancelling it aborts the request in flight. Nothing is retried.
package client
