package jpformatter

import (
	"github.com/baditaflorin/go_jp_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_jp_formatter/internal/ports"
)

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewStdLogger()
}
