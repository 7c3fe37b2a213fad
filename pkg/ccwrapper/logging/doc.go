// Package logging provides a minimal logging facade for applications built
// on the wrapper.
//
// The package defines a Logger interface over a subset of the standard
// library's log/slog functionality. The interface is intentionally small to
// allow applications to provide custom implementations for testing,
// redaction, or integration with existing logging systems. The library
// itself never logs: key material, plaintexts and intermediate state stay
// out of any log stream by construction.
//
// # Default Implementation
//
//	// Use default logger (slog.Default())
//	logger := logging.New(nil)
//
//	// Use custom slog.Logger
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	customLogger := logging.New(slog.New(handler))
//
// # Redaction Support
//
// Secrets never belong in logs, not even truncated or hex encoded:
//
//	logger.Info(ctx, "key derived",
//	    logging.RedactedBytes("key", key),
//	    "algorithm", "PBKDF2-SHA256",
//	)
//	// Logs: key="[redacted 32 bytes]" algorithm="PBKDF2-SHA256"
//
// # Security Considerations
//
//   - Never log keys, plaintexts, IVs of deterministic schemes or tags
//   - Use Redacted / RedactedBytes to mark sensitive attributes
//   - Ensure log storage is secure and access-controlled
package logging
