/*
Package observability provides tools for monitoring the synthesis executor.

It includes Prometheus metrics and structured logging, both attached to the
executor as lifecycle hooks.
*/
package observability
