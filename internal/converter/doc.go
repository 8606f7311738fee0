// Package converter wraps the domain conversion engine for the service
// surfaces. It normalizes requests, caches successful results in an LRU,
// records Prometheus metrics, and hands completed conversions to an optional
// audit publisher.
package converter
