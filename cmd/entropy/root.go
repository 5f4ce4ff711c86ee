/*
* Root command
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Gilah-EnE/entropy"
	"github.com/Gilah-EnE/entropy/internal/approxmath"
	"github.com/Gilah-EnE/entropy/internal/config"
	"github.com/Gilah-EnE/entropy/internal/input"
)

var errEmptyInput = errors.New("input is empty")

// app carries the loaded configuration to the subcommands.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "entropy [file]",
		Short: "Approximate Shannon entropy of a file or standard input",
		Long: `Prints the approximate Shannon entropy in bits per byte of the given file,
or of standard input when no file or "-" is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: a.runEntropy,
	}

	pf := cmd.PersistentFlags()
	pf.String(config.KeyLogLevel, a.v.GetString(config.KeyLogLevel), "log level (trace|debug|info|warn|error)")
	pf.String(config.KeyLogFormat, a.v.GetString(config.KeyLogFormat), "log format (console|json)")
	pf.Bool(config.KeyExact, a.v.GetBool(config.KeyExact), "use the exact natural logarithm instead of the approximation")

	f := cmd.Flags()
	f.Bool("metric", false, "also print the metric entropy (entropy divided by input length)")
	f.Bool("echo", false, "print the quoted input before the result")

	cmd.AddCommand(a.newReportCmd(), newVersionCmd())
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	setupLogger(cmd.ErrOrStderr(), cfg)
	return nil
}

func setupLogger(w io.Writer, cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogFormat == config.FormatJSON {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
}

func (a *app) estimator() entropy.Estimator {
	if a.cfg.Exact {
		return entropy.New(approxmath.Exact)
	}
	return entropy.New(approxmath.Ln)
}

// openInput returns the input named by args, standard input by default.
func openInput(cmd *cobra.Command, args []string) (*input.Source, error) {
	if len(args) == 0 || args[0] == input.Stdin {
		return input.Read("stdin", cmd.InOrStdin())
	}
	return input.Open(args[0])
}

func (a *app) runEntropy(cmd *cobra.Command, args []string) error {
	src, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer func(src *input.Source) {
		if err := src.Close(); err != nil {
			log.Error().Err(err).Str("input", src.Name()).Msg("failed to close input")
		}
	}(src)

	data := src.Bytes()
	log.Debug().Str("input", src.Name()).Int("size", len(data)).Bool("exact", a.cfg.Exact).Msg("input read")

	out := cmd.OutOrStdout()
	if echo, _ := cmd.Flags().GetBool("echo"); echo {
		fmt.Fprintf(out, "Input from %s: %q\n", src.Name(), data)
	}
	if len(data) == 0 {
		return errEmptyInput
	}

	est := a.estimator()
	fmt.Fprintf(out, "Shannon Entropy (approximate bits per byte): %v\n", est.Entropy(data))
	if metric, _ := cmd.Flags().GetBool("metric"); metric {
		fmt.Fprintf(out, "Shannon Metric Entropy (per byte position): %v\n", est.MetricEntropy(data))
	}
	return nil
}

func init() {
	// console output until the configuration is loaded
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
