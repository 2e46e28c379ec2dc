// Package server defines the canonical types for MCP server entries and the
// persisted config document that holds them.
//
// The document serializes to the Claude Desktop config shape:
//
//	{
//	  "mcpServers":       { "<name>": {"command": "...", "args": [...]}, ... },
//	  "unusedMcpServers": { "<name>": {...}, ... }
//	}
//
// Unknown JSON fields, both per-entry (env, url, ...) and top-level, are
// preserved through load/save round trips so holster can share the file with
// other tools without destroying their settings.
package server
