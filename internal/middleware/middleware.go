// Package middleware holds the echo middleware of the posts API: request
// ids, request scoped logging, locale selection, rate limiting, tracing,
// optional Clerk authentication and the global error handler.
package middleware
