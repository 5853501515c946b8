// Package server exposes the pipeline over HTTP.
//
// Routes:
//
//	GET  /health                   liveness plus load status
//	GET  /api/dataset              published canonical dataset and last load report
//	GET  /api/series/{kind}        one series, ?window=5Y|10Y|20Y|ALL (default 5Y)
//	GET  /api/metrics              derived figures
//	GET  /api/estimate             current real-time estimate
//	GET  /api/export.csv           yearly table as CSV, ?human=1 for locale formatting
//	GET  /api/export.xlsx          yearly table as a workbook
//	POST /api/reload               run a load cycle now
//	GET  /ws/estimate              websocket stream of real-time estimates
//	GET  /metrics                  Prometheus metrics
package server
