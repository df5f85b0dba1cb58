// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Input is the content of a tile file. Regular files are memory mapped.
type Input struct {
	Name string
	Data []byte

	m mmap.MMap
	f *os.File
}

// Open loads the tile at path; "-" reads standard input.
func Open(path string) (*Input, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("could not read stdin: %w", err)
		}

		return &Input{Name: path, Data: b}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	// an empty file cannot be mapped
	if fi.Size() == 0 || !fi.Mode().IsRegular() {
		b, err := io.ReadAll(f)
		_ = f.Close()

		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}

		return &Input{Name: path, Data: b}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("could not map %s: %w", path, err)
	}

	return &Input{Name: path, Data: m, m: m, f: f}, nil
}

// Close releases the mapping. Data must not be used afterwards.
func (in *Input) Close() error {
	in.Data = nil

	if in.m != nil {
		if err := in.m.Unmap(); err != nil {
			return err
		}

		in.m = nil
	}

	if in.f != nil {
		err := in.f.Close()
		in.f = nil

		return err
	}

	return nil
}
