package utils

import (
	"io"

	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// CloseLogged closes c and logs a failure under name. A nil c is ignored.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
	}
}
