// Package calculators holds the autonomy calculation models.
//
// Topology computes per-source figures from the explicit wiring and projects the daily cycle over the
// whole energy pool. Aggregate treats every device as fed by one shared pool.
package calculators
