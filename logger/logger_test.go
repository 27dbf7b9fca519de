package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/logger"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "json", "")
	l.Info().Str("employee_id", "emp-1").Msg("record saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "record saved", entry["message"])
	assert.Equal(t, "emp-1", entry["employee_id"])
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	_, err := logger.Setup(logger.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestSetup_FileOutputAndComponent(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := logger.Setup(logger.LogConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	l := logger.WithComponent("payroll")
	l.Debug().Msg("run started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"payroll"`)
	assert.Contains(t, string(data), "run started")
}
