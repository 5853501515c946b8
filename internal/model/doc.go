// Package model defines shared data types used across the debtwatch pipeline.
//
// Conventions:
//   - Debt amounts: float64 millions of euros, as published by Eurostat (MIO_EUR)
//   - Ratios and rates: float64 percentage points (112.2 = 112.2%)
//   - Years: int calendar years
//   - Derived amounts (per-capita, deltas, interest): float64 euros
package model
