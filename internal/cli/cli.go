// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the envbind command line tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/z5labs/envbind/dotenv"
	"github.com/z5labs/envbind/internal/maskslog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// EnvPrefix prefixes the environment variables which provide flag defaults,
// e.g. ENVBIND_DIR for --dir.
const EnvPrefix = "ENVBIND"

type app struct {
	v   *viper.Viper
	log *slog.Logger
	tp  *sdktrace.TracerProvider
}

// New returns the root command.
func New() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:               "envbind",
		Short:             "Inspect and validate .env files",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.String("dir", "./", "directory containing the dotenv file")
	flags.String("file", ".env", "name of the dotenv file")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Bool("env", false, "merge the process environment, which takes precedence")
	flags.Bool("ignore-missing", false, "treat a missing dotenv file as empty")
	flags.Bool("ignore-malformed", false, "drop malformed entries instead of failing")
	flags.Bool("trace", false, "write trace spans to stderr")
	err := a.v.BindPFlags(flags)
	if err != nil {
		panic(err)
	}

	root.AddCommand(
		a.printCmd(),
		a.getCmd(),
		a.checkCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(a.v.GetString("log-level")))
	if err != nil {
		return err
	}

	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	a.log = slog.New(maskslog.NewHandler(h))

	if !a.v.GetBool("trace") {
		return nil
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	a.tp = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	otel.SetTracerProvider(a.tp)
	return nil
}

func (a *app) shutdown(ctx context.Context) error {
	if a.tp == nil {
		return nil
	}
	return a.tp.Shutdown(ctx)
}

func (a *app) dotenvOptions() []dotenv.Option {
	opts := []dotenv.Option{
		dotenv.Directory(a.v.GetString("dir")),
		dotenv.Filename(a.v.GetString("file")),
		dotenv.Logger(a.log),
	}
	if a.v.GetBool("env") {
		opts = append(opts, dotenv.Environ(os.Environ))
	} else {
		opts = append(opts, dotenv.Environ(noEnviron))
	}
	if a.v.GetBool("ignore-missing") {
		opts = append(opts, dotenv.IgnoreIfMissing())
	}
	if a.v.GetBool("ignore-malformed") {
		opts = append(opts, dotenv.IgnoreIfMalformed())
	}
	return opts
}

func (a *app) load(ctx context.Context) (*dotenv.Dotenv, error) {
	return dotenv.Load(ctx, a.dotenvOptions()...)
}

func noEnviron() []string { return nil }

// KeyNotFoundError occurs when a requested key is not present.
type KeyNotFoundError struct {
	Key string
}

// Error implements the error interface.
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}
