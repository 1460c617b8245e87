package utils

import (
	"log"
	"os"
)

// InitLogger initializes and returns the process logger.
func InitLogger() *log.Logger {
	return log.New(os.Stdout, "[elearn] ", log.LstdFlags|log.LUTC)
}
