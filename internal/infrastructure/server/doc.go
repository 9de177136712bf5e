// Package server wires configuration, logging, metrics, providers, the
// session manager and the HTTP/WebSocket API into one http.Server.
//
// Responses are gzip-compressed with klauspost/compress/gzhttp when the
// client accepts it. A janitor goroutine sweeps idle sessions while the
// server runs.
package server
