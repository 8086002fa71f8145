// Package params parses key=value parameter input for the CLI.
//
// Two input shapes are supported:
//   - repeatable --conn-param flags ("key=value"), parsed by
//     ParseKeyValuePairs and merged into the connection's additional
//     parameters
//   - .env files, parsed by ParseEnvFile and applied to the process
//     environment before connection resolution
//
// # Thread Safety
//
// All functions are safe for concurrent use.
package params
