// Package extract parses embedded MCP server configuration out of project
// documentation.
//
// Many MCP server READMEs carry an installation snippet shaped like the
// Claude Desktop config:
//
//	```json
//	{"mcpServers": {"calculator": {"command": "uvx", "args": ["mcp-server-calculator"]}}}
//	```
//
// The Extractor finds the first such fenced block that parses, takes its
// first server entry, and produces a Descriptor a caller can hand to the
// registry. Extraction is best-effort: a missing README or an unparsable
// block yields a default descriptor named after the directory, never an
// error.
package extract
