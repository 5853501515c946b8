// Package export writes the yearly debt table as CSV or XLSX.
//
// Rows carry one debt year each, in a fixed column order. Cells with no
// source data (ratio or per-capita for a year the dataset lacks) are left
// empty rather than zero.
package export
