// Package grid places contribution days on the 7-row, week-major calendar
// grid and derives the per-cell mass and anomaly flags the warp field
// consumes.
//
// Mass is the count clipped at a high percentile, scaled to [0,1] and
// lifted with a 0.6 power curve:
//
//	cells := grid.Normalize(days)
//	flagged := grid.DetectAnomalies(cells, grid.DefaultAnomalyPercent)
package grid
