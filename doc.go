// Package fx is a shader effects engine for broadcast scoreboard graphics.
//
// fx compiles and drives single-pass fragment-shader programs that render
// time-varying visual effects over rectangular UI regions: overlay effects
// (bursts, glows, flashes) drawn additively on top of visible content,
// distortion effects that re-sample a captured raster of the content
// through a coordinate warp, and continuous generative noise patterns.
//
// The package is organised leaves-first:
//
//   - fx (this package): colors, pixel buffers, the effect scheduler and
//     the active-effect model shared by every render surface.
//   - fx/noise: pure-math gradient noise and fractal Brownian motion.
//   - fx/effects: the closed effect catalog, WGSL shader sources and CPU
//     evaluators.
//   - fx/program: the GPU program manager over an injectable Device.
//   - fx/backend: device backends (software reference, wgpu).
//   - fx/surface: overlay, distortion and generative render adapters.
//   - fx/preset: named generative parameter bundles and their store.
//
// All failure paths degrade to "no effect shown": a compile error, a
// missing GPU context or a failed content capture leaves the underlying
// content visible and never panics out of a frame callback.
package fx
