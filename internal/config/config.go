/*
* Configuration module
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

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Gilah-EnE/entropy/internal/analysis"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ENTROPY_BLOCK_SIZE.
const EnvPrefix = "ENTROPY"

// Keys, also used as command line flag names.
const (
	KeyLogLevel           = "log-level"
	KeyLogFormat          = "log-format"
	KeyBlockSize          = "block-size"
	KeyExact              = "exact"
	KeyAutocorrThreshold  = "autocorr-threshold"
	KeyKSThreshold        = "ks-threshold"
	KeyChiSquareThreshold = "chi-square-threshold"
	KeyCompressThreshold  = "compression-threshold"
	KeySignatureThreshold = "signature-threshold"
	KeyEntropyThreshold   = "entropy-threshold"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel   zerolog.Level
	LogFormat  string
	BlockSize  int
	Exact      bool
	Thresholds analysis.Thresholds
}

// SetDefaults registers the default of every key in v.
func SetDefaults(v *viper.Viper) {
	thresholds := analysis.DefaultThresholds()

	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyLogFormat, FormatConsole)
	v.SetDefault(KeyBlockSize, 1048576)
	v.SetDefault(KeyExact, false)
	v.SetDefault(KeyAutocorrThreshold, thresholds.Autocorrelation)
	v.SetDefault(KeyKSThreshold, thresholds.KS)
	v.SetDefault(KeyChiSquareThreshold, thresholds.ChiSquare)
	v.SetDefault(KeyCompressThreshold, thresholds.Compression)
	v.SetDefault(KeySignatureThreshold, thresholds.Signatures)
	v.SetDefault(KeyEntropyThreshold, thresholds.Entropy)
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var errs *multierror.Error

	level, err := zerolog.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyLogLevel, err))
	}

	cfg := Config{
		LogLevel:  level,
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
		BlockSize: v.GetInt(KeyBlockSize),
		Exact:     v.GetBool(KeyExact),
		Thresholds: analysis.Thresholds{
			Autocorrelation: v.GetFloat64(KeyAutocorrThreshold),
			KS:              v.GetFloat64(KeyKSThreshold),
			ChiSquare:       v.GetFloat64(KeyChiSquareThreshold),
			Compression:     v.GetFloat64(KeyCompressThreshold),
			Signatures:      v.GetFloat64(KeySignatureThreshold),
			Entropy:         v.GetFloat64(KeyEntropyThreshold),
		},
	}

	if cfg.LogFormat != FormatConsole && cfg.LogFormat != FormatJSON {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s must be %s or %s", ErrInvalidConfig, KeyLogFormat, FormatConsole, FormatJSON))
	}
	if cfg.BlockSize <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyBlockSize))
	}
	for key, value := range map[string]float64{
		KeyAutocorrThreshold:  cfg.Thresholds.Autocorrelation,
		KeyKSThreshold:        cfg.Thresholds.KS,
		KeyChiSquareThreshold: cfg.Thresholds.ChiSquare,
		KeyCompressThreshold:  cfg.Thresholds.Compression,
		KeySignatureThreshold: cfg.Thresholds.Signatures,
		KeyEntropyThreshold:   cfg.Thresholds.Entropy,
	} {
		if value < 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, key))
		}
	}
	if cfg.Thresholds.Entropy > 8 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s must not exceed 8", ErrInvalidConfig, KeyEntropyThreshold))
	}

	return cfg, errs.ErrorOrNil()
}
