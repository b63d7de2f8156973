// Package frame adapts decoded images to the host-facing frame contract.
//
// A Frame is what a hosting environment sees: a fixed-format pixel source
// that answers capability queries, reports its size, pixel format and
// resolution, and serves rectangular pixel copies. Two implementations
// exist: ImageFrame wraps a real decoded image, and PlaceholderFrame stands
// in where a host requires a frame object but no image is available.
//
// Everything a frame does not support is a hard, stable answer rather than a
// configuration point: there is never a palette, never metadata, never a
// thumbnail, and never any color contexts. Hosts are expected to probe with
// Supports before relying on a capability.
package frame
