// Package httputil provides HTTP utilities for collaborator clients.
//
// # Overview
//
// This package provides infrastructure used by the embedding and
// summarization clients:
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [DoJSON]: POST a JSON request and decode a JSON response
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap transient errors in [RetryableError] so Retry knows to attempt
// the operation again; other errors are returned immediately.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Max retries: 3
//   - Base backoff: 1 second (doubling each retry)
package httputil
