package utils

import (
	"io"
	"os"

	"github.com/vkotov/rulesmith/internal/log"
)

// CloseOrWarn closes the closer and logs a warning on failure.
func CloseOrWarn(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
