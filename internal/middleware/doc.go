// Package middleware provides the HTTP middleware of the ingest service:
// access logging in W3C Extended Log Format, Prometheus request metrics
// labelled by route template, and gzip compression of JSON responses.
package middleware
