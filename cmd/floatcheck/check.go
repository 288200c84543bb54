package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/shogo82148/floatcheck"
)

var errBadPair = errors.New("want result:reference")

type pair struct {
	Result    string
	Reference string
}

func parsePair(arg string) (pair, error) {
	result, reference, ok := strings.Cut(arg, ":")
	if !ok || result == "" || reference == "" {
		return pair{}, fmt.Errorf("%q: %w", arg, errBadPair)
	}
	return pair{Result: result, Reference: reference}, nil
}

type checker struct {
	width     int
	tolerance floatcheck.Tolerance
	jobs      int
	logger    zerolog.Logger
}

// check compares one result file with its reference file.
func (c *checker) check(p pair) (*floatcheck.Report, error) {
	switch c.width {
	case 16:
		src, err := readValues16(p.Result)
		if err != nil {
			return nil, err
		}
		ref, err := readValues16(p.Reference)
		if err != nil {
			return nil, err
		}
		return floatcheck.Verify16(src, ref, c.tolerance)
	case 32:
		src, err := readValues32(p.Result)
		if err != nil {
			return nil, err
		}
		ref, err := readValues32(p.Reference)
		if err != nil {
			return nil, err
		}
		return floatcheck.Verify32(src, ref, c.tolerance)
	}
	return nil, fmt.Errorf("unsupported width %d", c.width)
}

// checkAll checks every pair, at most c.jobs at a time, and reports whether
// all of them matched. The first I/O or parse error cancels the rest.
func (c *checker) checkAll(ctx context.Context, pairs []pair) (bool, error) {
	reports := make([]*floatcheck.Report, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.check(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Result, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	ok := true
	for i, r := range reports {
		c.logReport(pairs[i], r)
		ok = ok && r.OK()
	}
	return ok, nil
}

func (c *checker) logReport(p pair, r *floatcheck.Report) {
	if r.OK() {
		c.logger.Info().
			Str("result", p.Result).
			Int("values", r.Total).
			Msg("match")
		return
	}

	for _, m := range r.Mismatches {
		c.logger.Debug().
			Str("result", p.Result).
			Msg(m.Describe(r.Width))
	}
	c.logger.Error().
		Str("result", p.Result).
		Str("reference", p.Reference).
		Int("values", r.Total).
		Int("mismatches", len(r.Mismatches)).
		Uint64("max_ulp", r.MaxULP).
		Uint64("mean_ulp", r.MeanULP()).
		Str("first", r.Mismatches[0].Describe(r.Width)).
		Msg("mismatch")
}
