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

package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Unzigzag32 decodes a zigzag encoded 32-bit parameter.
func Unzigzag32(v uint32) int32 {
	return int32(protowire.DecodeZigZag(uint64(v)))
}

// Zigzag32 zigzag encodes a 32-bit value.
func Zigzag32(v int32) uint32 {
	return uint32(protowire.EncodeZigZag(int64(v)))
}

// Unzigzag64 decodes a zigzag encoded 64-bit value.
func Unzigzag64(v uint64) int64 {
	return protowire.DecodeZigZag(v)
}
