// Package log provides structured protocol logging for cube sessions.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, service).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/cube/session.clog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw channel payloads (FrameEvent)
//   - Wire: Decoded notifications and reads (DecodedEvent)
//   - Service: Session state changes (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Log files use CBOR encoding with .clog extension. The cube-log CLI tool
// provides viewing, filtering, statistics and export.
package log
