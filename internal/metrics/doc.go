// Package metrics computes the business KPI catalog over a merged sales
// record set: revenue, period-over-period growth, monthly trends, category
// and geographic breakdowns, customer experience, operational rates, and a
// combined summary.
//
// Every function is a pure, single-pass transformation of its input. Given
// a valid record set none of them fail: zero denominators, empty comparison
// periods and empty groups are expected edge cases and come back as explicit
// flags or empty groups, never as errors, NaN or Inf.
package metrics
