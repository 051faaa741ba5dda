// Package render turns sampled lens frames into images.
//
// A Painter translates one frame into draw calls on a Surface. The raster
// surface backs the GIF encoder; the terminal preview provides its own
// surface. SVG output is written directly as CSS keyframe animations
// sampled from the same frames.
package render
