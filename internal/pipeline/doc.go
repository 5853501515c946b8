// Package pipeline implements the load-and-fallback cycle.
//
// The Pipeline:
//   - Fetches the live datasets concurrently and joins them with a barrier
//   - Applies the batch policy when a fetch fails outright
//   - Resolves empty datasets through the fallback cascade
//   - Derives per-capita debt and publishes an immutable CanonicalDataset
//   - Restarts the real-time extrapolator after every published cycle
//   - Optionally reloads on a fixed interval
//
// Readers only ever observe a fully assembled dataset, either the previous
// one or the current one.
package pipeline
