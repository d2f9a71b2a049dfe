// Package blobstore persists binary image objects in SQLite and materializes
// display references from stored bytes.
//
// The Store manages the database connection, schema initialization, and the
// object lifecycle: Put generates a collision-resistant identifier, Get
// materializes a usable file reference (sniffing the MIME type for legacy
// records that stored none), and Delete/List/Clear are direct pass-throughs.
// Nothing is garbage-collected implicitly; callers own deletion.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package blobstore
