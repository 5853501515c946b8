// Package realtime implements the Real-Time Extrapolator.
//
// The Extrapolator:
//   - Anchors a linear projection at the latest debt point when started
//   - Derives a per-second rate from the last annual change
//   - Emits base + elapsed * rate to subscribers on a fixed cadence (default 1s)
//   - Runs at most one ticker; Start cancels the previous one first
//
// Estimates are for display only and are never fed back into the dataset.
package realtime
