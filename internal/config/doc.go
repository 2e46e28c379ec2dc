// Package config manages holster's own configuration file.
//
// Configuration is loaded with Viper from config.yaml in the current
// directory or <ConfigHome>/holster/, with HOLSTER_* environment variable
// overrides. It controls where the managed MCP server document lives
// (store_path) and how discovery scans behave (scan.max_depth, scan.timeout,
// scan.locations).
package config
