// Package sampler evaluates the lens at discrete animation times.
//
// A [Scene] holds everything that is computed once per render: normalized
// and anomaly-flagged cells, per-source activation delays, interference
// levels and lens zones. [Scene.At] turns a time into a [Frame]; it depends
// only on the scene and the time, so frames can be produced in any order.
//
//   - [Scene]: immutable per-render state
//   - [Frame]: warped cells and channel progress at one instant
//   - [Sampler]: produces a loop's worth of frames and observes metrics
//
// # Example
//
//	scene := sampler.NewScene(days, sampler.DefaultOptions())
//	s := sampler.New(scene, logger)
//	result, _ := s.Run(ctx, sampler.Config{FPS: 12})
//
// # Thread Safety
//
// Scenes are read-only after construction and safe to share. A Sampler
// samples frames concurrently but observes metrics on the calling goroutine
// in frame order.
package sampler
