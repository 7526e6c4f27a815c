// Package keypoint implements scale-space interest-point detection: finding
// salient, repeatable image locations with an estimated scale and
// orientation.
//
// # Pipeline
//
// Detection runs a fixed stage order over the whole candidate set:
//
//  1. Derived data: gradient, orientation and magnitude planes are computed
//     from the source plane (ImageData).
//  2. Interest map: a pluggable Operator (Harris or LoG) fills the interest
//     plane with a per-pixel saliency score.
//  3. Extremum search: local maxima (and minima, when the operator detects
//     both polarities) become raw candidates.
//  4. Sub-pixel localization: a quadratic fit refines each candidate's
//     coordinates. Points are never removed here, even on a poor fit.
//  5. Thresholding: the operator's threshold predicate drops weak points.
//  6. Culling: candidates are sorted by descending interest and truncated to
//     the configured maximum.
//  7. Orientation: a weighted circular histogram of gradient directions
//     yields zero or more dominant orientations per point; extra modes clone
//     the point.
//
// The Detector type runs this on a single plane; ScaledDetector runs it per
// octave of a scale-space pyramid, rescaling coordinates back to the
// original image frame. Detect composes either driver with optional tiling
// for large images.
//
// # Determinism
//
// Every stage is deterministic computation over in-memory planes; repeated
// runs with the same input and configuration produce identical output.
//
// # Non-goals
//
// The Descriptor slot on InterestPoint is populated downstream; this package
// performs no descriptor encoding, feature matching, or geometric
// verification. HomographyError is exposed for those consumers.
package keypoint
