// Package scan discovers candidate MCP server projects on local disk.
//
// The Scanner walks a directory tree to a bounded depth and classifies each
// directory independently. Classification is heuristic: a Python source file
// carrying both a framework-import marker and a tool-registration decorator,
// or a dependency manifest (requirements.txt, pyproject.toml) mentioning the
// framework. A cheaper presence-only variant (ListCandidates) skips content
// reads entirely.
//
// Scans are best-effort. Unreadable files and directories are treated as
// non-matches, and the only fatal conditions are a missing scan root and an
// exceeded context deadline.
package scan
