package commands

import (
	"fmt"
	"os"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/joho/godotenv"
)

const apiURLEnv = "WEB3_INVOICING_API_URL"

const defaultAPIURL = "http://localhost:8080"

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// resolveAPIURL prefers the flag value, then the environment (a .env file is honoured), then the local default.
func resolveAPIURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	_ = godotenv.Load()
	if v := os.Getenv(apiURLEnv); v != "" {
		return v
	}
	return defaultAPIURL
}
