// Package metrics records per-run scraper metrics in a private Prometheus registry.
//
// A run is a short-lived batch job, so nothing is served over HTTP. When configured,
// the registry is written once at the end of the run in the node_exporter textfile
// collector format.
package metrics
