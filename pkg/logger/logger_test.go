package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(" ERROR "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_JSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("descartado")
	l.Warn().Str("store_id", "s1").Msg("visible")

	assert.NotContains(t, buf.String(), "descartado")
	assert.Contains(t, buf.String(), `"store_id":"s1"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Out: &buf})

	l.Component("ledger").Info().Str("product_id", "p-1").Msg("movimiento aplicado")

	assert.Contains(t, buf.String(), `"component":"ledger"`)
	assert.Contains(t, buf.String(), `"product_id":"p-1"`)
}

func TestNop_NoPanicaConNil(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Component("x").Info().Msg("nada") })
}
