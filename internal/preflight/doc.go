// Package preflight provides readiness checks for the programs, fonts and
// directories a render depends on.
//
// The CLI "hanzireel doctor" command runs RunAll and prints one row per
// check. Render itself does not call these checks; it fails with a specific
// error at the step that needs the missing piece.
package preflight
