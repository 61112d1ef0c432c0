// Package app wires configuration, logging, metrics, the brand store
// and the HTTP server into a runnable application.
package app
