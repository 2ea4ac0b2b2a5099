package application

import "log/slog"

// Analytics wiring may omit the logger; default rather than branch at
// every call site.
func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
