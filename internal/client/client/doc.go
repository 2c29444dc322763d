// Package client talks to the Lost & Found REST backend.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) covering every endpoint
//     the UI needs: Login, Register, ListItems, CreateItem, ConfirmFound,
//     ListGuards and ConfirmPickup.
//  2. A REST implementation (see RESTClient) that attaches the stored bearer
//     token to each request, tags it with an X-Request-ID, decodes the
//     {message, data, token} envelope and maps status codes to errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Authorization failures
//
// A 401 from any endpoint clears the session and fires the hook installed
// with WithUnauthorizedHook before the error reaches the caller. The request
// is not retried and the token is not refreshed.
//
// # Error Handling
//
// Non-2xx answers are returned as *APIError, which matches ErrUnauthorized
// (401) and ErrForbidden (403) under errors.Is. Transport failures wrap
// ErrUnavailable. A cancelled context is reported as the context's error.
package client
