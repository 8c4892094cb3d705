// Package client is a Go SDK for the phone book API.
//
// Besides the HTTP calls it carries the client-side presentation logic:
// first-letter grouping of sorted entry lists, a debounced Searcher that
// shows stale results while a new search is in flight, and a debounced
// Probe for advisory duplicate/username-availability checks.
package client
