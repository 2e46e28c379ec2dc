// Package paths centralizes file system path resolution for holster.
//
// It resolves the default location of the managed MCP server config document,
// holster's own configuration directory, and the well-known project locations
// the discovery scanner inspects. XDG base directories are used throughout so
// paths resolve correctly on macOS, Linux, and Windows.
package paths
