// Package connection is a websocket client for the live debt estimate
// stream served at /ws/estimate.
//
// The client decodes each text frame into a realtime.Estimate and delivers
// it on a buffered channel. Read errors and stale-connection detection are
// reported on a separate error channel; the client never reconnects on its
// own, callers decide whether to dial again.
package connection
