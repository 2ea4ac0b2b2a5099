package application

import "log/slog"

// resolveLogger guards the optional logger dependency.
func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
