// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a single key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			key := args[0]
			v, ok := d.Get(key)
			if !ok {
				return KeyNotFoundError{Key: key}
			}
			a.log.Debug("resolved key", slog.String("key", key), slog.String("value", v))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}
