// Package main hosts the discsift CLI entrypoint and command graph.
//
// The Cobra-based command tree reads disc descriptions, runs the detection
// pass over them, renders the decisions as tables or JSON, and manages the
// local detection history and configuration. Configuration resolution and
// logging setup live in commandContext so subcommands only handle their own
// flags and output.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
