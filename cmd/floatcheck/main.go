// Command floatcheck compares computed floating point results with
// reference values within a tolerance.
//
//	floatcheck [flags] result:reference [result:reference ...]
//
// Each file holds one value per line, either a raw bit pattern in hex
// (0x3c00) or a decimal literal (1.5, -inf, nan).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shogo82148/floatcheck"
)

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, log.Logger))
}

func run(ctx context.Context, args []string, stderr io.Writer, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("floatcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.Int("width", 32, "Floating point width in bits (32, 16)")
	method := fs.String("method", "ulp", "Comparison method (ulp, epsilon, relative)")
	ulp := fs.Int("ulp", 0, "ULP tolerance for -method ulp")
	epsilon := fs.Float64("epsilon", 0, "Absolute tolerance for -method epsilon")
	relative := fs.Int("rel", 0, "Relative epsilon exponent for -method relative")
	denorm := fs.String("denorm", "any", "Denormal mode for 32-bit values (any, preserve, ftz)")
	jobs := fs.Int("j", runtime.GOMAXPROCS(0), "Number of file pairs to check in parallel")
	verbose := fs.Bool("v", false, "Log every mismatching value")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: floatcheck [flags] result:reference ...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)

	if *width != 32 && *width != 16 {
		logger.Error().Int("width", *width).Msg("width must be 32 or 16")
		return exitError
	}
	if *jobs < 1 {
		logger.Error().Int("j", *jobs).Msg("-j must be positive")
		return exitError
	}

	mode, err := floatcheck.ParseDenormMode(*denorm)
	if err != nil {
		logger.Error().Err(err).Msg("invalid -denorm")
		return exitError
	}
	tol := floatcheck.Tolerance{
		ULP:         *ulp,
		Epsilon:     float32(*epsilon),
		RelativeExp: *relative,
		Mode:        mode,
	}
	switch *method {
	case "ulp":
		tol.Method = floatcheck.MethodULP
	case "epsilon":
		tol.Method = floatcheck.MethodEpsilon
	case "relative":
		tol.Method = floatcheck.MethodRelativeEpsilon
	default:
		logger.Error().Str("method", *method).Msg("unknown method")
		return exitError
	}
	if err := tol.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid tolerance")
		return exitError
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitError
	}
	pairs := make([]pair, 0, fs.NArg())
	for _, arg := range fs.Args() {
		p, err := parsePair(arg)
		if err != nil {
			logger.Error().Err(err).Msg("invalid argument")
			return exitError
		}
		pairs = append(pairs, p)
	}

	logger.Debug().
		Int("width", *width).
		Stringer("method", tol.Method).
		Stringer("denorm", tol.Mode).
		Int("pairs", len(pairs)).
		Msg("checking")

	c := &checker{
		width:     *width,
		tolerance: tol,
		jobs:      *jobs,
		logger:    logger,
	}
	ok, err := c.checkAll(ctx, pairs)
	if err != nil {
		logger.Error().Err(err).Msg("check failed")
		return exitError
	}
	if !ok {
		return exitMismatch
	}
	return exitOK
}
