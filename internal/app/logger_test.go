//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		level     string
		pretty    string
		wantLevel zerolog.Level
	}{
		{level: "", wantLevel: zerolog.InfoLevel},
		{level: "debug", wantLevel: zerolog.DebugLevel},
		{level: "info", pretty: "true", wantLevel: zerolog.InfoLevel},
		{level: "warn", pretty: "false", wantLevel: zerolog.WarnLevel},
		{level: "error", wantLevel: zerolog.ErrorLevel},
		{level: "verbose", wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level+"_pretty="+tt.pretty, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_PRETTY", tt.pretty)

			assert.NotPanics(t, InitializeLogger)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}
