// Package server exposes the calculator engines over HTTP.
//
// Routes:
//
//	GET /v1/calc?x=&op=&y=[&algo=]  evaluate one expression, JSON response
//	GET /health                     liveness probe
//	GET /metrics                    Prometheus metrics
//
// Every response carries an X-Request-ID header and the security headers
// of SecurityMiddleware.
package server
