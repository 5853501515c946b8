// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Remote fetch outcomes per dataset (ok, empty, network, http, malformed)
//   - Fallback substitutions per dataset and whole-cycle batch failures
//   - Load cycle latency and the age of the published dataset
//   - Real-time estimate value and subscriber count
package metrics
