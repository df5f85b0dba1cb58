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

package model

import (
	"fmt"
	"strings"
)

// Compression identifies how a tile payload is compressed.
type Compression uint8

const (
	RAW Compression = iota
	GZIP
	ZLIB
	ZSTD
	LZ4
	XZ
)

var compressionNames = [...]string{
	RAW:  "raw",
	GZIP: "gzip",
	ZLIB: "zlib",
	ZSTD: "zstd",
	LZ4:  "lz4",
	XZ:   "xz",
}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}

	return fmt.Sprintf("Compression(%d)", c)
}

// ParseCompression parses the names returned by Compression.String,
// ignoring case.
func ParseCompression(s string) (Compression, error) {
	for i, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return Compression(i), nil
		}
	}

	return RAW, fmt.Errorf("unknown compression %q", s)
}
