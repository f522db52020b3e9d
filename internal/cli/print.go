// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/z5labs/envbind/dotenv"
	"github.com/z5labs/envbind/internal/maskslog"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// UnknownFormatError occurs when --format names an unsupported format.
type UnknownFormatError struct {
	Format string
}

// Error implements the error interface.
func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format: %s", e.Format)
}

// UnquotableValueError occurs when --format env meets a value which no
// dotenv quoting style can reproduce, such as one holding both an
// apostrophe and an unescaped double quote.
type UnquotableValueError struct {
	Key string
}

// Error implements the error interface.
func (e UnquotableValueError) Error() string {
	return fmt.Sprintf("value of %s cannot be written as a dotenv entry", e.Key)
}

type printer func(io.Writer, []dotenv.Entry) error

var printers = map[string]printer{
	"env":  printEnv,
	"json": printJSON,
	"yaml": printYAML,
}

func (a *app) printCmd() *cobra.Command {
	var (
		format      string
		declared    bool
		showSecrets bool
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the loaded entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := printers[format]
			if !ok {
				return UnknownFormatError{Format: format}
			}

			d, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			entries := d.Entries()
			if declared {
				entries = d.Declared()
			}
			if !showSecrets {
				entries = mask(entries)
			}
			a.log.Debug("printing entries", slog.Int("count", len(entries)), slog.String("format", format))
			return p(cmd.OutOrStdout(), entries)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&format, "format", "env", "output format: env, json or yaml")
	flags.BoolVar(&declared, "declared", false, "print only the file entries in source order")
	flags.BoolVar(&showSecrets, "show-secrets", false, "print secret looking values unmasked")
	return cmd
}

func mask(entries []dotenv.Entry) []dotenv.Entry {
	masked := make([]dotenv.Entry, len(entries))
	for i, e := range entries {
		if maskslog.IsSecret(e.Key) {
			e.Value = maskslog.Mask
		}
		masked[i] = e
	}
	return masked
}

func printEnv(w io.Writer, entries []dotenv.Entry) error {
	for _, e := range entries {
		v, ok := quote(e.Value)
		if !ok {
			return UnquotableValueError{Key: e.Key}
		}
		_, err := fmt.Fprintf(w, "%s=%s\n", e.Key, v)
		if err != nil {
			return err
		}
	}
	return nil
}

// quote renders v so that parsing it again yields v.
// It reports false if no quoting style can do so.
func quote(v string) (string, bool) {
	stray, dangling := scanEscapes(v)
	switch {
	case v == "":
		return "", true
	case !strings.ContainsAny(v, " \t\r\n#\"'") && strings.TrimSpace(v) == v:
		return v, true
	case !stray && !dangling:
		return `"` + v + `"`, true
	case !strings.ContainsAny(v, "'\n"):
		return "'" + v + "'", true
	}
	return "", false
}

// scanEscapes reports whether v holds a double quote not preceded by
// a backslash and whether v ends with an unpaired backslash.
func scanEscapes(v string) (stray, dangling bool) {
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\':
			if i == len(v)-1 {
				dangling = true
			}
			i++
		case '"':
			stray = true
		}
	}
	return stray, dangling
}

func printJSON(w io.Writer, entries []dotenv.Entry) error {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func printYAML(w io.Writer, entries []dotenv.Entry) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(doc)
	if err != nil {
		return err
	}
	return enc.Close()
}
