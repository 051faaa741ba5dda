// Package field computes the gravity-lens displacement of calendar cells.
//
// Every warp variant is a parameterization of one primitive, [Field]: a set
// of weighted point sources, a kernel turning softened squared distance into
// a force factor, optional range and anisotropy, and a magnitude clamp that
// is applied after all contributions have been summed.
//
//   - [FieldWarp]: every cell with mass repels its neighbours.
//   - [WarpedPositions]: cells are pushed away from attractor points.
//   - [LocalLensWarp]: only anomaly cells act as sources, within a radius.
//   - [LocalLensWarpPerSource]: as LocalLensWarp, each source on its own clock.
//
// Derived per-cell scalars ([WarpIntensity], [Interference], [InZone],
// [ActivationDelays]) and the deterministic rotation and jitter hashes used
// by renderers live here as well.
//
// # Example
//
//	geom := field.Geometry{CellSize: 11, CellGap: 4}
//	cells := grid.DetectAnomalies(grid.Normalize(days), grid.DefaultAnomalyPercent)
//	warped := field.LocalLensWarp(cells, 1, 60, 0.5, geom)
//	intensity := field.WarpIntensity(warped)
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. A [Field] is read-only
// once built.
package field
