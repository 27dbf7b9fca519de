package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_PATH", "RUN_WORKERS", "PAY_DAY", "CORS_ORIGINS", "SCHEDULER_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "payroll.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.RunWorkers)
	assert.Equal(t, 25, cfg.PayDay)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.SchedulerEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("RUN_WORKERS", "8")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SCHEDULER_ENABLED", "true")
	t.Setenv("SCHEDULER_INTERVAL", "30m")
	t.Setenv("COMPANY_NAME", "Cerdik Tuition Centre")
	t.Setenv("PAY_DAY", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 8, cfg.RunWorkers)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.SchedulerEnabled)
	assert.Equal(t, 30*time.Minute, cfg.SchedulerInterval)
	assert.Equal(t, 25, cfg.PayDay, "malformed values fall back")
	assert.Equal(t, "Cerdik Tuition Centre", cfg.Company().Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no db path", func(c *config.Config) { c.DBPath = " " }},
		{"zero workers", func(c *config.Config) { c.RunWorkers = 0 }},
		{"pay day 31", func(c *config.Config) { c.PayDay = 31 }},
		{"fast scheduler", func(c *config.Config) { c.SchedulerEnabled = true; c.SchedulerInterval = time.Second }},
		{"log format", func(c *config.Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Load()
			cfg.LogFormat = "json"
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("COMPANY_REG_NO=202301012345\n"), 0o600))
	t.Setenv("COMPANY_REG_NO", "")
	os.Unsetenv("COMPANY_REG_NO")

	require.NoError(t, config.LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "202301012345", config.Load().CompanyRegNo)
}

func TestSchedule(t *testing.T) {
	cfg := config.Load()
	cfg.RateScheduleFile = ""
	s, err := cfg.Schedule()
	require.NoError(t, err)
	assert.Equal(t, 60, s.EPF.SeniorAge)

	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"epf": {"senior_age": 65}}`), 0o600))
	cfg.RateScheduleFile = path
	s, err = cfg.Schedule()
	require.NoError(t, err)
	assert.Equal(t, 65, s.EPF.SeniorAge)
}
