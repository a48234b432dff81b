// Package logging provides the structured logging facade used across clientctl.
//
// It is a thin layer over Go's slog package that adds a subsystem attribute to
// every entry, so diagnostic output can be filtered by the part of the program
// that produced it.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelWarn, os.Stderr)
//
//	logging.Info("Config", "Loaded configuration from %s", path)
//	logging.Debug("API", "GET %s -> %d", url, status)
//	logging.Error("Controller", err, "Delete of client %d failed", id)
//
// # Subsystems
//
//   - API: outbound HTTP requests to the client resource
//   - Controller: add/edit/delete flows and cache synchronisation
//   - Config: configuration loading and environment overrides
//   - Console: the interactive console loop
//   - Telemetry: tracer provider setup
//
// Until InitForCLI is called, messages are dropped. Output goes to the writer
// given to InitForCLI, which for clientctl is stderr so stdout stays usable
// for command results.
package logging
