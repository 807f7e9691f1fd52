package app

import (
	"os"
	"strconv"

	"github.com/guttosm/grind-calculator/internal/logger"
)

// InitializeLogger configures the global zerolog logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	pretty, _ := strconv.ParseBool(os.Getenv("LOG_PRETTY"))
	logger.Init(level, pretty)
}
