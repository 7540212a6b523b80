// Package sqlerr classifies Postgres driver errors and turns them into
// client-facing HTTP errors.
package sqlerr
