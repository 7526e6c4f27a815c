// Package pyramid builds the scale-space image octaves the multi-scale
// detector walks through.
//
// An Octave holds a stack of progressively smoothed planes covering one
// doubling of scale. Plane k is the source smoothed to sigma0 * 2^(k/S)
// where S is the configured scales-per-octave; the stack carries two extra
// planes past the doubling point so scale-space extremum search always has
// neighbors on both sides.
//
// Sigmas are expressed in the octave's own pixel units and therefore repeat
// identically across octaves; BaseScale converts in-octave coordinates and
// sigmas back to original-image units. Advancing to the next octave
// downsamples the plane at twice the base sigma and doubles BaseScale.
package pyramid
