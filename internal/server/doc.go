// Package server runs the HTTP listener and the background workers, and
// stops both gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
