// Package exporter writes computed metric sets to report files: per-group
// CSV tables and a combined Excel summary workbook. It owns no computation;
// it formats whatever the metrics engine produced.
package exporter
