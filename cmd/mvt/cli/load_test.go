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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := writeFile(t, "0.mvt", "tile bytes")

	in, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, path, in.Name)
	assert.Equal(t, []byte("tile bytes"), in.Data)
	assert.NotNil(t, in.m)

	require.NoError(t, in.Close())
	assert.Nil(t, in.Data)
	require.NoError(t, in.Close())
}

func TestOpenEmpty(t *testing.T) {
	in, err := Open(writeFile(t, "empty.mvt", ""))
	require.NoError(t, err)

	assert.Empty(t, in.Data)
	assert.Nil(t, in.m)
	require.NoError(t, in.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open("does/not/exist.mvt")
	assert.Error(t, err)
}

func TestProgressDisabled(t *testing.T) {
	p := NewProgress(10, false)
	p.Increment()
	p.Finish()

	assert.Nil(t, p.bar)
}
