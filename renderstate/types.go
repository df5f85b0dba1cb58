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

package renderstate

// Winding is the vertex order of front facing polygons.
type Winding uint8

const (
	CCW Winding = iota
	CW
)

// Face selects the polygon faces that are culled.
type Face uint8

const (
	Back Face = iota
	Front
	FrontAndBack
)

// BlendFactor is a source or destination blending factor.
type BlendFactor uint8

const (
	Zero BlendFactor = iota
	One
	SrcColor
	OneMinusSrcColor
	SrcAlpha
	OneMinusSrcAlpha
	DstAlpha
	OneMinusDstAlpha
	DstColor
	OneMinusDstColor
)

// DepthFunc compares incoming and stored depth values.
type DepthFunc uint8

const (
	Less DepthFunc = iota
	LessEqual
	Equal
	Greater
	Always
)

// Culling configures face culling.
type Culling struct {
	Enabled bool
	Winding Winding
	Face    Face
}

// BlendingFunc is the pair of factors used when blending is enabled.
type BlendingFunc struct {
	Src BlendFactor
	Dst BlendFactor
}

// Context holds the settings applied once when a context is configured and
// never changed by draw calls.
type Context struct {
	StencilTest bool
	DepthFunc   DepthFunc
	ClearDepth  float32
	DepthRange  [2]float32
	ClearColor  [4]float32
}

// DefaultContext is the context configuration used unless overridden.
var DefaultContext = Context{
	DepthFunc:  LessEqual,
	ClearDepth: 1,
	DepthRange: [2]float32{0, 1},
	ClearColor: [4]float32{0.3, 0.3, 0.3, 1},
}

// Driver issues the graphics calls. Implementations wrap the graphics
// binding of the rendering context.
type Driver interface {
	SetBlending(enabled bool)
	SetDepthWrite(enabled bool)
	SetCulling(c Culling)
	SetBlendingFunc(f BlendingFunc)
	SetDepthTest(enabled bool)
	Configure(c Context)
}
