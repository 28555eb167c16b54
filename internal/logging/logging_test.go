package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Format: "text", Out: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("interface", "eth0").Info("Interface MTU changed to 1500. Reverting back.")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=Interface MTU changed to 1500. Reverting back.")
	assert.Contains(t, out, "interface=eth0")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Format: "JSON", Out: &buf})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("mtu", 9000).Debug("drained")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "drained", entry["msg"])
	assert.Equal(t, float64(9000), entry["mtu"])
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(Options{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, "invalid log format")
}
