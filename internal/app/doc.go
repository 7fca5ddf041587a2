// Package app wires the application together for the web binary: it loads
// configuration, builds the logger, loads and merges the dataset once, and
// runs the HTTP server over the cached record set until shutdown.
package app
