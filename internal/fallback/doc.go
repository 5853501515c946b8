// Package fallback supplies deterministic substitute data when a dataset
// cannot be acquired live.
//
// The fallback cascade has two tiers:
//   - Live datasets (debt, gdp_ratio, population): the series already held
//     by the dataset under construction when it is non-empty, otherwise an
//     embedded reference snapshot. Callers pass the in-progress dataset of
//     the current load cycle, so nothing carries over between cycles.
//   - Reference datasets (eu_comparison, economic_indicators): always the
//     embedded snapshot. These are contextual tables, never fetched.
//
// StaticSnapshot returns the complete reference dataset used when a whole
// load cycle is discarded.
package fallback
