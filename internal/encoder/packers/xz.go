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

package packers

import (
	"bytes"
	"fmt"

	"github.com/ulikunitz/xz"
)

type XzPacker struct {
	base
}

func NewXzPacker() (*XzPacker, error) {
	buf := new(bytes.Buffer)

	w, err := xz.NewWriter(buf)
	if err != nil {
		return nil, fmt.Errorf("could not create xz writer: %w", err)
	}

	return &XzPacker{base: newBase(buf, w)}, nil
}
