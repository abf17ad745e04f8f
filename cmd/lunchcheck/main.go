// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Command lunchcheck evaluates opening_hours expressions at the next weekday
// lunch instant, the same way the shared library does.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vartfanskaviluncha/lunchhours/config"
	"github.com/vartfanskaviluncha/lunchhours/lunch"
	"github.com/vartfanskaviluncha/lunchhours/openinghours"
	"github.com/vartfanskaviluncha/lunchhours/overpass"
)

var now = time.Now

type options struct {
	configFile string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:          "lunchcheck",
		Short:        "Check opening hours at lunch",
		Long:         "Evaluate OSM opening_hours expressions at 12:00:01 on the next weekday",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "debug logging")

	rootCmd.AddCommand(checkCmd(&opts))
	rootCmd.AddCommand(instantCmd(&opts))
	rootCmd.AddCommand(filterCmd(&opts))
	rootCmd.AddCommand(queryCmd())

	return rootCmd
}

// env is what every subcommand needs once the config is loaded.
type env struct {
	logger  *slog.Logger
	checker lunch.Checker
}

func setup(cmd *cobra.Command, opts *options) (*env, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.debug || cfg.Debug)
	logger.Debug("config.loaded", "path", opts.configFile, "holidays", cfg.Holidays, "timezone", cfg.Timezone)

	checker, err := cfg.Checker(now)
	if err != nil {
		return nil, err
	}

	return &env{logger: logger, checker: checker}, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check PATTERN...",
		Short: "Evaluate expressions at lunch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			var parseOpts []openinghours.Option
			if e.checker.Holidays != nil {
				parseOpts = append(parseOpts, openinghours.WithHolidays(e.checker.Holidays))
			}

			at := lunch.Instant(e.checker.Now())
			out := cmd.OutOrStdout()
			for _, pattern := range args {
				oh, err := openinghours.Parse(pattern, parseOpts...)
				if err != nil {
					e.logger.Debug("pattern.invalid", "pattern", pattern, "error", err)
					fmt.Fprintf(out, "%q: error: %v\n", pattern, err)
					continue
				}
				e.logger.Debug("pattern.parsed", "rules", oh.String())

				fmt.Fprintf(out, "%q: %s at %s", pattern, oh.State(at), at.Format(time.RFC3339))
				if next := oh.Until(at); !next.IsZero() {
					fmt.Fprintf(out, " until %s", next.Format(time.RFC3339))
				}
				if comment := oh.Comment(at); comment != "" {
					fmt.Fprintf(out, " (%s)", comment)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func instantCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "instant",
		Short: "Print the instant expressions are evaluated at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), lunch.Instant(e.checker.Now()).Format(time.RFC3339))
			return nil
		},
	}
}

func filterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filter [FILE]",
		Short: "List the places of an Overpass response open at lunch",
		Long:  "Read an Overpass API JSON response from FILE, or stdin when FILE is absent or '-', and print the places open at lunch as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			var in []byte
			if len(args) == 0 || args[0] == "-" {
				in, err = io.ReadAll(cmd.InOrStdin())
			} else {
				in, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			c := overpass.New()
			resp, err := c.Decode(in)
			if err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}

			open := resp.OpenAtLunch(e.checker)
			e.logger.Info("filter.done", "elements", len(resp.Elements), "open", len(open))

			out, err := c.Encode(open)
			if err != nil {
				return fmt.Errorf("failed to encode locations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query AREA",
		Short: "Print the Overpass query listing places to eat in an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), overpass.Query(args[0]))
			return nil
		},
	}
}
