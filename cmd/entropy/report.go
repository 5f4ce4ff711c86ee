/*
* Report command
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
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Gilah-EnE/entropy/internal/analysis"
	"github.com/Gilah-EnE/entropy/internal/config"
	"github.com/Gilah-EnE/entropy/internal/input"
)

func (a *app) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Run the full randomness test battery",
		Long: `Runs the entropy estimate together with the Kolmogorov-Smirnov, autocorrelation,
compression and signature tests and reports whether the data looks encrypted.
The chi-squared statistic is printed for reference.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runReport,
	}

	f := cmd.Flags()
	f.Bool("json", false, "print the report as JSON")
	f.Int(config.KeyBlockSize, a.v.GetInt(config.KeyBlockSize), "block size in bytes for the block based tests")
	f.Float64(config.KeyAutocorrThreshold, a.v.GetFloat64(config.KeyAutocorrThreshold), "autocorrelation threshold")
	f.Float64(config.KeyKSThreshold, a.v.GetFloat64(config.KeyKSThreshold), "Kolmogorov-Smirnov statistic threshold")
	f.Float64(config.KeyChiSquareThreshold, a.v.GetFloat64(config.KeyChiSquareThreshold), "chi-squared statistic threshold")
	f.Float64(config.KeyCompressThreshold, a.v.GetFloat64(config.KeyCompressThreshold), "mean compression ratio threshold")
	f.Float64(config.KeySignatureThreshold, a.v.GetFloat64(config.KeySignatureThreshold), "file signatures per MiB threshold")
	f.Float64(config.KeyEntropyThreshold, a.v.GetFloat64(config.KeyEntropyThreshold), "entropy threshold in bits per byte")
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, args []string) error {
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
	if len(data) == 0 {
		return errEmptyInput
	}
	log.Info().Str("input", src.Name()).Int("size", len(data)).Int("block_size", a.cfg.BlockSize).Msg("running test battery")

	report, err := analysis.Run(data, analysis.Options{
		BlockSize:  a.cfg.BlockSize,
		Estimator:  a.estimator(),
		Thresholds: a.cfg.Thresholds,
	})
	if err != nil {
		// the remaining tests are still reported
		log.Warn().Err(err).Msg("some tests failed")
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(cmd.OutOrStdout(), src.Name(), report)
}

func printReport(out io.Writer, name string, r analysis.Report) error {
	t := r.Thresholds
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Input:\t%s (%d bytes, %d distinct)\n", name, r.Size, r.Distinct)
	fmt.Fprintf(w, "Entropy (approximate):\t%f\tthreshold >= %f\n", r.Entropy, t.Entropy)
	fmt.Fprintf(w, "Entropy (reference):\t%f\n", r.ReferenceEntropy)
	fmt.Fprintf(w, "Metric entropy:\t%g\n", r.MetricEntropy)
	fmt.Fprintf(w, "Chi-squared:\t%f\tcritical %f\n", r.ChiSquare, t.ChiSquare)
	fmt.Fprintf(w, "Kolmogorov-Smirnov:\t%f\tthreshold <= %f (position %d, critical %f)\n", r.KS.Statistic, t.KS, r.KS.Position, r.KS.Critical005)
	fmt.Fprintf(w, "Autocorrelation:\t%f\tthreshold <= %f\n", r.Autocorrelation, t.Autocorrelation)
	fmt.Fprintf(w, "Compression ratio:\t%f\tthreshold <= %f\n", r.Compression, t.Compression)
	fmt.Fprintf(w, "File signatures per MiB:\t%f\tthreshold <= %f\n", r.SignatureDensity, t.Signatures)
	if containers := analysis.FoundSignaturesToReadable(r.Containers); containers != "" {
		fmt.Fprintf(w, "Encryption containers:\t%s\n", containers)
	}
	fmt.Fprintf(w, "Positive tests:\t%d of 5\n", r.Positive)
	fmt.Fprintf(w, "Result:\t%s\n", r.Classification)
	return w.Flush()
}
