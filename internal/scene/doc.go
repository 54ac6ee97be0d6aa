// Package scene is the object and timeline model behind every rendered video.
//
// Coordinates are scene units with the origin at the frame center and +y
// pointing up. Shapes are flattened to polylines when constructed; modifiers
// such as MoveTo and Scale edit that geometry directly. Once objects are on a
// Scene, animations never touch the geometry: each one records per-leaf
// transform, opacity and text reveal keyframes, and Snapshot evaluates those
// keyframes at an arbitrary time into a list of Drawables.
//
// Composition is single threaded. A finished Scene is read-only, so Snapshot
// may be called from several goroutines at once.
package scene
