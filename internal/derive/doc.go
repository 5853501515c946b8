// Package derive computes secondary metrics from a canonical dataset.
//
// All functions are pure. Debt series are expected in millions of euros;
// derived amounts are returned in euros.
package derive
