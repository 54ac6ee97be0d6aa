// Package history persists one row per render run in a SQLite database under
// the state directory.
//
// A run is inserted as "running" when the render lock is acquired and
// finalized with succeeded, failed or invalid once the render returns. The CLI
// history command lists rows newest first.
package history
