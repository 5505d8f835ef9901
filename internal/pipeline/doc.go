// Package pipeline composes the pure core (tone mapping, gamma, region
// resolution) with the decode, capture, resize and save collaborators.
//
// Three orchestrators are provided:
//   - Converter turns an HDR (.hdr/.exr) file into a resized LDR thumbnail.
//   - Capturer picks the monitor that best serves a requested rectangle,
//     grabs the clamped region and saves a resized screenshot.
//   - GammaCorrector applies a one-shot gamma LUT to an LDR file in place.
//
// Every failure is returned as an *Error whose Kind can be matched with
// errors.Is against the sentinel errors of this package. Outputs are written
// atomically by the Saver, so a failed operation leaves no partial file.
package pipeline
