// Package staging owns the ordered list of images awaiting upload.
//
// The Manager validates and downsizes incoming files, assigns identifiers,
// maintains preview files for every staged entry, applies committed edits via
// the composer, and hands finished batches to the upload collaborator. The
// image at position 0 is the primary image; there is no separate flag, the
// Primary accessor derives it from order.
//
// Previews are the principal shared resource: each belongs to exactly one
// staged image and is released before the entry is removed or its asset
// replaced.
package staging
