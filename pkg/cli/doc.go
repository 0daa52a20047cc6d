// Package cli provides the command-line interface for stitchd.
//
// Commands:
//   - stitch: introspect the configured endpoints once and print the
//     stitched type inventory
//   - serve: stitch the configured endpoints and run the gateway HTTP
//     server in the foreground with graceful shutdown
//   - version: show version information
//
// All commands read a configuration file (default stitchd.yaml) describing
// the remote endpoints, the optional type filter, and serving options.
package cli
