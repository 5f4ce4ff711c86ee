/*
* Signature search (encryption container and file signature detection) module
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

package analysis

import (
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/rure-go"
)

// Where a container signature is searched for.
const (
	sectorAnywhere = 0
	sectorFirst    = 1
	sectorLast     = -1
)

type signatureData struct {
	regex  string
	sector int
}

type compiledSignature struct {
	regex  *rure.Regex
	sector int
}

// Patterns match the lowercase hex encoding of the data, so every byte is
// two characters wide.
var containerPatterns = map[string]signatureData{
	"FreeBSD GELI": {"(?i)(47454f4d3a3a454c49)", sectorLast},
	"BitLocker":    {"(?i)(eb58902d4656452d46532d0002080000)", sectorFirst},
	"LUKSv1":       {"(?i)4c554b53babe0001", sectorFirst},
	"LUKSv2":       {"(?i)4c554b53babe0002", sectorFirst},
	"FileVault v2": {"(?i)41505342.{456}0800000000000000", sectorAnywhere},
	"PGP WDE":      {"(?i)(eb489050475047554152440000000000)", sectorFirst},
}

var filePatterns = map[string]string{
	"7-Zip Compressed file":         "(?i)(377abcaf271c)",
	"BZIP2 Compressed Archive file": "(?i)(425a68)",
	"ELF executable":                "(?i)(7f454c46)",
	"FLAC audio":                    "(?i)(664c6143)",
	"GZIP Archive file":             "(?i)(1f8b08)",
	"JPEG image":                    "(?i)(ffd8ff)(ed|e2|e3|db)",
	"JPEG-LS image":                 "(?i)(ffd8fff7)",
	"JPEG2000 image files":          "(?i)(0000000c6a502020)",
	"Matroska stream":               "(?i)(1a45dfa3)",
	"Microsoft cabinet file":        "(?i)(4d534346)",
	"Microsoft Office document":     "(?i)(d0cf11e0a1b11ae1)",
	"MPEG video file":               "(?i)(000001b3)",
	"Ogg":                           "(?i)(4f676753)",
	"PDF file":                      "(?i)(25504446)",
	"PNG image":                     "(?i)(89504e470d0a1a0a)",
	"RAR archive":                   "(?i)(52617221)",
	"RIFF":                          "(?i)(52494646)(.{8})(57415645|41564920|57454250|41434f4e)",
	"SQLite3 database":              "(?i)(53514c69746520666f726d61742033)",
	"TIFF file":                     "(?i)(49492a00|4d4d002a)",
	"Unix archiver (ar)|MS COFF":    "(?i)(213c617263683e0a)",
	"Windows executable":            "(?i)(4d5a9000)",
	"XZ archive":                    "(?i)(fd377a585a00)",
	"ZIP archive":                   "(?i)(504b0304|504b0506|504b0708)",
	"Zstandard archive":             "(?i)(28b52ffd)",
}

// SignatureScanner holds the compiled signature catalogs.
type SignatureScanner struct {
	containers map[string]compiledSignature
	files      map[string]*rure.Regex
}

func NewSignatureScanner() (*SignatureScanner, error) {
	s := &SignatureScanner{
		containers: make(map[string]compiledSignature, len(containerPatterns)),
		files:      make(map[string]*rure.Regex, len(filePatterns)),
	}
	for name, pattern := range containerPatterns {
		regex, err := rure.Compile(pattern.regex)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", name, err)
		}
		s.containers[name] = compiledSignature{regex: regex, sector: pattern.sector}
	}
	for name, pattern := range filePatterns {
		regex, err := rure.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", name, err)
		}
		s.files[name] = regex
	}
	return s, nil
}

// findBytesPattern counts the matches that start on a byte boundary.
func findBytesPattern(data string, regex *rure.Regex) int {
	// FindAll returns start and end positions of every match
	matches := regex.FindAll(data)
	var found int
	for i := 0; i < len(matches); i += 2 {
		if matches[i]%2 == 0 {
			found++
		}
	}
	return found
}

// Containers counts encryption container signatures. Header signatures are
// only looked for in the first block, trailer signatures in the last block.
func (s *SignatureScanner) Containers(data []byte, blockSize int) (map[string]int, error) {
	if blockSize <= 0 {
		return nil, ErrBlockSize
	}

	first := data[:min(len(data), blockSize)]
	last := data[max(0, len(data)-blockSize):]

	found := make(map[string]int, len(s.containers))
	var firstHex, lastHex, wholeHex string
	for name, entry := range s.containers {
		var hexData string
		switch entry.sector {
		case sectorFirst:
			if firstHex == "" {
				firstHex = hex.EncodeToString(first)
			}
			hexData = firstHex
		case sectorLast:
			if lastHex == "" {
				lastHex = hex.EncodeToString(last)
			}
			hexData = lastHex
		default:
			if wholeHex == "" {
				wholeHex = hex.EncodeToString(data)
			}
			hexData = wholeHex
		}
		found[name] = findBytesPattern(hexData, entry.regex)
	}
	return found, nil
}

// FileSignatureDensity returns the number of known file signatures per MiB
// of data, along with the per-signature totals.
func (s *SignatureScanner) FileSignatureDensity(data []byte, blockSize int) (float64, map[string]int, error) {
	if blockSize <= 0 {
		return math.NaN(), nil, ErrBlockSize
	}
	if len(data) == 0 {
		return math.NaN(), nil, ErrEmptyInput
	}

	found := make(map[string]int, len(s.files))
	for start := 0; start < len(data); start += blockSize {
		end := min(start+blockSize, len(data))
		hexData := hex.EncodeToString(data[start:end])
		for name, regex := range s.files {
			found[name] += findBytesPattern(hexData, regex)
		}
	}

	size := float64(len(data)) / 1048576.0
	return float64(sum(found)) / size, found, nil
}

// sum calculates the sum of all values in a map[string]int
func sum(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// FoundSignaturesToReadable lists the non-zero counts as "name - count"
// pairs sorted by name.
func FoundSignaturesToReadable(found map[string]int) string {
	names := make([]string, 0, len(found))
	for name, count := range found {
		if count > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s - %d", name, found[name])
	}
	return strings.Join(parts, ", ")
}
