// Package errs defines the error shape returned to API clients.
//
// Handlers return *HTTPError values; the global error handler serializes them
// as JSON. Field errors carry per-field validation failures.
package errs
