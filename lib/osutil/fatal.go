package osutil

import (
	"log/slog"
	"os"
)

// Fatal logs an error and kills the process with a non-zero status.
func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}
