// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/z5labs/envbind/dotenv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrCheckFailed is returned by check when at least one file is invalid.
var ErrCheckFailed = errors.New("one or more dotenv files are invalid")

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

type checkResult struct {
	path    string
	entries int
	err     error
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate that each dotenv file parses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.check(cmd.Context(), args)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), results)
		},
	}
}

// check parses every path concurrently. Malformed entries always fail.
func (a *app) check(ctx context.Context, paths []string) ([]checkResult, error) {
	results := make([]checkResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			d, err := dotenv.Load(
				gctx,
				dotenv.Directory(filepath.Dir(path)),
				dotenv.Filename(filepath.Base(path)),
				dotenv.Environ(noEnviron),
				dotenv.Logger(a.log),
			)
			results[i] = checkResult{path: path, err: err}
			if err == nil {
				results[i].entries = len(d.Declared())
			}
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

func report(w io.Writer, results []checkResult) error {
	failed := false
	for _, r := range results {
		var err error
		if r.err != nil {
			failed = true
			_, err = fmt.Fprintf(w, "%s %s: %s\n", red("FAIL"), r.path, r.err)
		} else {
			_, err = fmt.Fprintf(w, "%s %s %s\n", green("OK"), r.path, gray(fmt.Sprintf("(%d entries)", r.entries)))
		}
		if err != nil {
			return err
		}
	}
	if failed {
		return ErrCheckFailed
	}
	return nil
}
