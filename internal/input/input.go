/*
* Input reading module
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

// Package input provides the byte sequence the command line tool analyses.
package input

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

type Source struct {
	name string
	data []byte
	mm   mmap.MMap
}

// Open returns the contents of path. Regular files are memory mapped read
// only, standard input is read into memory.
func Open(path string) (*Source, error) {
	if path == "" || path == Stdin {
		return Read("stdin", os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	// the mapping stays valid after the file is closed
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return Read(path, f)
	}
	// empty files cannot be mapped
	if stat.Size() == 0 {
		return &Source{name: path}, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap input: %w", err)
	}
	return &Source{name: path, data: mm, mm: mm}, nil
}

// Read consumes r completely.
func Read(name string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Source{name: name, data: data}, nil
}

func (s *Source) Name() string { return s.name }

// Bytes returns the input. The slice must not be used after Close.
func (s *Source) Bytes() []byte { return s.data }

func (s *Source) Close() error {
	s.data = nil
	if s.mm == nil {
		return nil
	}
	err := s.mm.Unmap()
	s.mm = nil
	if err != nil {
		return fmt.Errorf("unmap %s: %w", s.name, err)
	}
	return nil
}
