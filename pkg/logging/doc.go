// Package logging provides the structured logging used across ratectl.
//
// It is a thin layer over Go's log/slog. Every entry carries a subsystem
// attribute so that output from the bridge, the stores and the command
// layer can be told apart and filtered:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Catalog", "Loaded %d display modes", len(modes))
//	logging.Error("Rates", err, "Scan failed")
//
// # Subsystems
//
//   - Bootstrap: application wiring and first refresh
//   - ConfigLoader: ratectl's own YAML configuration
//   - Bridge: command execution and host conventions
//   - Overrides: global and per-application override file
//   - Catalog: display mode catalog
//   - Rates: refresh-rate node table
//   - Labels: background label resolution
//   - Device: status, flashing and maintenance commands
//   - Shell: the interactive session
//
// # Thread Safety
//
// Logging functions are safe for concurrent use. InitForCLI is expected to
// be called once during startup, before any goroutines log.
package logging
