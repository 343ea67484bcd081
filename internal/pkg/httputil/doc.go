// Package httputil provides shared HTTP response/request utilities for handlers.
//
// Every handler file should use these helpers instead of writing raw
// http.ResponseWriter calls, keeping JSON formatting and error envelopes
// consistent across all endpoints.
package httputil
