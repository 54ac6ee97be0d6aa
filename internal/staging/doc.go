// Package staging owns the media directory a render writes into.
//
// Every render starts from an empty media directory: Reset deletes whatever a
// previous run left behind and recreates the tree. Layout names the frame,
// video, poster and timeline paths for one output name. Callers must hold the
// render lock before calling Reset.
package staging
