// Package tonemap converts linear HDR radiance into 8-bit display values.
//
// The curve is a Reinhard-style operator applied after an exposure scale:
//
//	exposed = linear * exposure
//	mapped  = exposed / (1 + exposed)
//	out     = clamp(round(mapped * 255), 0, 255)
//
// It maps [0, +Inf) monotonically onto [0, 255] with a fixed point at 0.
// Each colour channel is mapped independently. Alpha is a coverage value,
// not radiance, so it is only scaled to 8 bits and never compressed.
//
// # Non-finite input
//
// The result is defined for every float32:
//   - NaN maps to 0
//   - +Inf maps to 255 (the limit of the curve)
//   - -Inf and any negative radiance map to 0
//
// All functions are pure and safe for concurrent use.
package tonemap
