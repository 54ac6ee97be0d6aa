// Package render turns a composed scene into files on disk.
//
// Frames are rasterized in parallel from scene snapshots, written as a PNG
// sequence, handed to the encoder for the final MP4 and summarized by a WebP
// poster and a timeline JSON. A Renderer owns the media directory for the
// duration of a run; the advisory lock in lock.go keeps two renders from
// clearing each other's output.
package render
