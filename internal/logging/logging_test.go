package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestNew_RedactsNestedAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Info("command started",
		slog.Group("command",
			slog.String("email", "john@doe.com"),
			slog.String("password", "Valid@1234"),
			slog.String("first_name", "John"),
		),
		slog.String("contact_email", "jane@doe.com"),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	cmd := entry["command"].(map[string]any)
	assert.Equal(t, "jo***@doe.com", cmd["email"])
	assert.Equal(t, Secret, cmd["password"])
	assert.Equal(t, "John", cmd["first_name"])
	assert.Equal(t, "ja***@doe.com", entry["contact_email"])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")

	assert.Zero(t, buf.Len())
}
