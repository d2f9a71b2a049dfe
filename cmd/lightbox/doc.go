// Command lightbox stages, edits, and hands off image batches from the
// terminal. It drives the same staging, transform, and object-store packages
// the library exposes.
package main
