// Package metrics provides observability hooks for sitemap generation runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks:
//
//	svc := build.NewService().WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A one-shot build step has no scrape endpoint, so the Prometheus registry is
// exported with WriteTextfile for the node-exporter textfile collector.
package metrics
