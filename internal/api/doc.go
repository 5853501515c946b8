// Package api provides the Eurostat dissemination API client and the
// normalizer for its dimensional (JSON-stat) responses.
//
// REST endpoint:
//   - https://ec.europa.eu/eurostat/api/dissemination/statistics/1.0/data/{dataset}
//
// Datasets:
//   - gov_10dd_edpt1: government deficit/debt (unit MIO_EUR or PC_GDP, sector S13, na_item GD)
//   - demo_pjan: population on 1 January (sex T, age TOTAL, lastTimePeriod 1)
//
// Fetch never surfaces per-dataset failures. Network errors, non-2xx
// statuses, and malformed documents are logged and reported as an empty
// series, which the pipeline resolves through its fallback cascade.
package api
