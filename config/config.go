// Package config reads process configuration from the environment, with
// optional .env files loaded first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/factory"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/logger"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

type Config struct {
	Addr   string
	DBPath string

	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string

	CORSOrigins []string

	CompanyName  string
	CompanyRegNo string

	// RateScheduleFile overrides the built-in statutory rates when set.
	RateScheduleFile string
	RunWorkers       int

	SchedulerEnabled  bool
	SchedulerInterval time.Duration
	PayDay            int
}

// LoadDotEnv loads the given .env files (".env" if none) into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "payroll.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:         getEnv("LOG_OUTPUT", "stdout"),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"*"}),
		CompanyName:       getEnv("COMPANY_NAME", "My Company Sdn Bhd"),
		CompanyRegNo:      getEnv("COMPANY_REG_NO", ""),
		RateScheduleFile:  getEnv("RATE_SCHEDULE_FILE", ""),
		RunWorkers:        getEnvInt("RUN_WORKERS", payroll.DefaultWorkers),
		SchedulerEnabled:  getEnvBool("SCHEDULER_ENABLED", false),
		SchedulerInterval: getEnvDuration("SCHEDULER_INTERVAL", time.Hour),
		PayDay:            getEnvInt("PAY_DAY", 25),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.RunWorkers < 1 {
		return fmt.Errorf("RUN_WORKERS must be positive")
	}
	if c.PayDay < 1 || c.PayDay > 28 {
		return fmt.Errorf("PAY_DAY must be between 1 and 28")
	}
	if c.SchedulerEnabled && c.SchedulerInterval < time.Minute {
		return fmt.Errorf("SCHEDULER_INTERVAL must be at least 1m")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

// LogConfig adapts the logging settings for logger.Setup.
func (c Config) LogConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// Company is the employer printed on payslips and EA forms.
func (c Config) Company() payroll.Company {
	return payroll.Company{Name: c.CompanyName, RegistrationNumber: c.CompanyRegNo}
}

// Schedule returns the statutory rates: RateScheduleFile if set, otherwise
// the built-in defaults.
func (c Config) Schedule() (statutory.Schedule, error) {
	if c.RateScheduleFile == "" {
		return statutory.DefaultSchedule(), nil
	}
	return factory.NewScheduleFactory().LoadFile(c.RateScheduleFile)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
