package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSanitizePoolSize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want uint
	}{
		{name: "valid", raw: "4", want: 4},
		{name: "surrounding whitespace", raw: " 3\n", want: 3},
		{name: "empty", raw: "", want: 1},
		{name: "not a number", raw: "four", want: 1},
		{name: "zero", raw: "0", want: 1},
		{name: "negative", raw: "-2", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizePoolSize(tt.raw, zerolog.Nop()))
		})
	}
}

func TestSanitizePoolSize_LogsFallback(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	require.EqualValues(t, 1, SanitizePoolSize("-1", log))
	require.Contains(t, buf.String(), "pool size should be positive")
}

func TestPromptPoolSize(t *testing.T) {
	var out bytes.Buffer

	got := PromptPoolSize(strings.NewReader("8\nignored\n"), &out, zerolog.Nop())

	require.EqualValues(t, 8, got)
	require.Equal(t, PoolSizePrompt+"\n", out.String())
}

func TestPromptPoolSize_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	require.EqualValues(t, 1, PromptPoolSize(strings.NewReader(""), &out, zerolog.Nop()))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLogger(&buf, "warn")
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Msg("visible")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "visible")

	_, err = NewLogger(&buf, "loud")
	require.Error(t, err)
}
