// Package cli holds the command line collaborators of the factorials command:
// pool size prompting and sanitization, and logger construction.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultPoolSize is used whenever the pool size is missing or unusable.
const DefaultPoolSize = 1

// PoolSizePrompt is written before reading the pool size interactively.
const PoolSizePrompt = "Enter the thread pool size:"

// SanitizePoolSize parses raw as a pool size.
// Empty, non-numeric and non-positive values fall back to DefaultPoolSize; the reason is logged.
func SanitizePoolSize(raw string, log zerolog.Logger) uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		log.Info().Msg("pool size is empty, using 1")
		return DefaultPoolSize
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Info().Err(err).Str("pool_size", raw).Msg("pool size should be a number, using 1")
		return DefaultPoolSize
	}
	if n <= 0 {
		log.Info().Int("pool_size", n).Msg("pool size should be positive, using 1")
		return DefaultPoolSize
	}
	return uint(n)
}

// PromptPoolSize writes PoolSizePrompt to out and reads one line from in.
func PromptPoolSize(in io.Reader, out io.Writer, log zerolog.Logger) uint {
	_, _ = fmt.Fprintln(out, PoolSizePrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		log.Error().Err(err).Msg("error while reading pool size")
		return DefaultPoolSize
	}
	return SanitizePoolSize(line, log)
}
