package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"impact-mcp/internal/impact"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Output formats understood by the CLI.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	ReportsDir          string
	EnableMermaidCharts bool
	DefaultRiskLevel    impact.RiskLevel
	DefaultFormat       string
	ScenarioConcurrency int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	return fromEnv(dataPath), nil
}

func fromEnv(dataPath string) *AppConfig {
	logDir := filepath.Join(dataPath, "logs")
	reportsDir := filepath.Join(dataPath, "reports")

	return &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		ReportsDir:          reportsDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
		DefaultRiskLevel:    getEnvRiskLevel("DEFAULT_RISK_LEVEL", impact.RiskMedium),
		DefaultFormat:       getEnvFormat("DEFAULT_OUTPUT_FORMAT", FormatText),
		ScenarioConcurrency: getEnvPositiveInt("SCENARIO_CONCURRENCY", 4),
	}
}

// EnsureReportsDir creates the reports directory on first use.
func (c *AppConfig) EnsureReportsDir() error {
	return os.MkdirAll(c.ReportsDir, 0755)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid boolean setting")
	}
	return fallback
}

func getEnvPositiveInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		log.Warn().Str("key", key).Str("value", value).Int("default", fallback).Msg("Ignoring invalid integer setting")
		return fallback
	}
	return n
}

func getEnvRiskLevel(key string, fallback impact.RiskLevel) impact.RiskLevel {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	level, err := impact.ParseRiskLevel(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Unknown risk level, using default")
		return fallback
	}
	return level
}

func getEnvFormat(key, fallback string) string {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	switch value {
	case "":
		return fallback
	case FormatText, FormatMarkdown, FormatJSON, FormatYAML:
		return value
	default:
		log.Warn().Str("key", key).Str("value", value).Msg("Unknown output format, using default")
		return fallback
	}
}
