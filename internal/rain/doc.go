// Package rain implements the falling-glyph simulation: per-column motion
// and fade, the gradient style mapping, and the differential frame buffer
// that decides which cells must be redrawn each tick.
//
// Everything here is single-threaded and owned by the render loop. All
// randomness flows through an explicit *rand.Rand so a fixed seed replays
// the same animation.
package rain
