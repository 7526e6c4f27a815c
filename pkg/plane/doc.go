// Package plane provides a float64 grayscale image container and the raster
// operations the keypoint pipeline is built on.
//
// A Plane stores one channel of pixel data in row-major order with values
// nominally in [0, 1]. All coordinates are 0-based with (0,0) at the top-left
// corner, X increasing rightward and Y increasing downward.
//
// # Edge Handling
//
// Operations that sample outside the plane (convolution, bilinear sampling,
// AtExtended) use clamped edge extension: out-of-range coordinates are
// replaced by the nearest valid pixel. Callers that need strict bounds must
// check coordinates themselves with In().
//
// # Mutability
//
// Planes are mutable. Operations that produce a new plane (SeparableConvolve,
// Laplacian, Downsample, Crop, Normalize) never modify their receiver, so a
// source plane can safely be shared by several derived results.
package plane
