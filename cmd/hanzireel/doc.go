// Package main hosts the hanzireel CLI entrypoint and command graph.
//
// The Cobra command tree covers rendering episodes to video, previewing their
// timeline, scaffolding lesson folders, inspecting render history, and
// configuration and environment checks. Configuration is resolved once per
// invocation in commandContext; commands that work without it opt out through
// the skipConfigLoad annotation.
//
// Keep this package lean: behavior lives in the internal packages, and the
// commands here only parse flags and format output.
package main
