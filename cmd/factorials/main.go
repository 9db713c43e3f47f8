// Command factorials reads one integer per line from an input file and writes
// "<n> = <n!>" lines, in the same order, to an output file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	factorial "github.com/easygolabs/FactorialCalculator"
	"github.com/easygolabs/FactorialCalculator/internal/cli"
	"github.com/easygolabs/FactorialCalculator/lineio"
	"github.com/easygolabs/FactorialCalculator/metrics"
)

const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorCanceled = 130 // SIGINT
)

const (
	defaultInput  = "src/main/resources/input.txt"
	defaultOutput = "output.txt"
)

// AppConfig groups the command line configuration.
type AppConfig struct {
	Input    string
	Output   string
	PoolSize string // prompted on stdin when empty
	Timeout  time.Duration
	LogLevel string
	// MetricsTextfile, when set, receives the run metrics in Prometheus text format.
	MetricsTextfile string
}

func main() {
	inFlag := flag.String("in", defaultInput, "Input file, one integer per line.")
	outFlag := flag.String("out", defaultOutput, "Output file, overwritten on each run.")
	poolFlag := flag.String("pool", "", "Worker pool size; prompted on stdin when empty.")
	timeoutFlag := flag.Duration("timeout", factorial.DefaultShutdownTimeout, "Maximum wait for in-flight computations at the end of input.")
	logLevelFlag := flag.String("log-level", "info", "Log level: debug, info, warn, error.")
	metricsFlag := flag.String("metrics-textfile", "", "Write Prometheus metrics to this file after the run.")
	flag.Parse()

	config := AppConfig{
		Input:           *inFlag,
		Output:          *outFlag,
		PoolSize:        *poolFlag,
		Timeout:         *timeoutFlag,
		LogLevel:        *logLevelFlag,
		MetricsTextfile: *metricsFlag,
	}

	os.Exit(run(context.Background(), config, os.Stdin, os.Stderr))
}

// run executes one pipeline run and returns the process exit code.
func run(ctx context.Context, config AppConfig, stdin io.Reader, stderr io.Writer) int {
	log, err := cli.NewLogger(stderr, config.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid log level %q: %v\n", config.LogLevel, err)
		return ExitErrorGeneric
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var poolSize uint
	if config.PoolSize == "" {
		poolSize = cli.PromptPoolSize(stdin, stderr, log)
	} else {
		poolSize = cli.SanitizePoolSize(config.PoolSize, log)
	}

	reg := prometheus.NewRegistry()
	p, err := factorial.New(
		factorial.WithPoolSize(poolSize),
		factorial.WithShutdownTimeout(config.Timeout),
		factorial.WithLogger(log),
		factorial.WithMetrics(metrics.NewPrometheusProvider("factorial", reg)),
	)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return ExitErrorGeneric
	}

	sink, err := lineio.CreateSink(config.Output)
	if err != nil {
		log.Error().Err(err).Str("path", config.Output).Msg("cannot create output file")
		return ExitErrorGeneric
	}
	defer closeLogged(log, sink, "output")

	src, err := lineio.OpenSource(config.Input)
	if err != nil {
		log.Error().Err(err).Str("path", config.Input).Msg("cannot open input file")
		return ExitErrorGeneric
	}
	defer closeLogged(log, src, "input")

	log.Info().
		Str("in", config.Input).
		Str("out", config.Output).
		Uint("pool_size", poolSize).
		Msg("calculating factorials")

	runErr := p.Run(ctx, src, sink)

	if config.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(config.MetricsTextfile, reg); err != nil {
			log.Error().Err(err).Str("path", config.MetricsTextfile).Msg("cannot write metrics")
		}
	}

	return exitCode(runErr)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, factorial.ErrShutdownTimeout) && !errors.Is(err, factorial.ErrRead) && !errors.Is(err, factorial.ErrWrite):
		// logged by the pool; the values computed in time are written
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

func closeLogged(log zerolog.Logger, c io.Closer, what string) {
	if err := c.Close(); err != nil {
		log.Error().Err(err).Str("file", what).Msg("error while closing file")
	}
}
