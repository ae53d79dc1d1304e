package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)
	log.Debug().Msg("hidden")
	log.Info().Str("table", "5").Msg("order placed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "order placed")
	assert.Contains(t, out, "env=production")
	assert.Contains(t, out, "table=5")

	buf.Reset()
	log = NewWithWriter("development", &buf)
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
