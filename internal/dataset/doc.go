// Package dataset loads the five e-commerce source tables from CSV files,
// cleans and deduplicates them, and merges them into the denormalized
// item-level sales record set consumed by the metrics engine.
//
// Loading is fatal-error strict (missing files, missing required columns)
// while cleaning and merging never fail on malformed rows: bad values degrade
// to nil fields and are reported as data-quality events through an injected
// sink.
package dataset
