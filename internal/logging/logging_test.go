package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlog(&buf, false)
	logger.Info("field created", "seed", "9:9:10")
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "field created", entry["msg"])
	assert.Equal(t, "9:9:10", entry["seed"])
}

func TestNewSlogDevelopment(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlog(&buf, true)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetupLogrusFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tui.log")
	log := logrus.New()
	require.NoError(t, SetupLogrus(log, true, file))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("cell", "1:2").Debug("opened")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cell":"1:2"`)
	assert.Contains(t, string(data), `"msg":"opened"`)
}

func TestSetupLogrusStderr(t *testing.T) {
	log := logrus.New()
	require.NoError(t, SetupLogrus(log, false, ""))
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
