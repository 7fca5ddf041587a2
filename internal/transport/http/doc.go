// Package http exposes the metrics catalog as a read-only JSON API for the
// reporting front end. Handlers hold no computation: they select a date
// window, hand the cached sales record set to the metrics engine, and
// render the result. All state is read-only after startup, so every
// endpoint is safe under concurrent requests.
package http
