// Package build runs sitemap generation end to end.
//
// A run has three sequential stages: resolve walks the pages directory into a
// path map, transform hands that map to the configured export hook (if any),
// and emit derives the sitemap entries and writes them atomically. Each stage
// is timed and counted through a metrics.Recorder and logged with the run ID
// and stage name. A failing stage ends the run; nothing is retried.
package build
