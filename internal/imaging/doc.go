// Package imaging is the geometric transform engine. It decodes an Asset onto
// an offscreen RGBA drawing surface, applies rotation, cropping, or
// aspect-preserving downscales, and re-encodes to the asset's original MIME
// type where an encoder exists.
//
// The engine is deliberately permissive: policy decisions such as the minimum
// useful crop size belong to callers (see internal/compose), not here.
package imaging
