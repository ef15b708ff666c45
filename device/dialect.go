// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"
	"strings"
)

// Dialect identifies a shading-language source variant.
type Dialect uint8

const (
	// DialectUnknown is the zero value; no device reports it.
	DialectUnknown Dialect = iota

	// DialectGLSL120 is legacy GLSL (#version 120, attribute/varying).
	DialectGLSL120

	// DialectGLSL150 is core-profile GLSL (#version 150 core, in/out).
	DialectGLSL150

	// DialectWGSL is WebGPU Shading Language.
	DialectWGSL
)

var dialectNames = [...]string{
	DialectUnknown: "unknown",
	DialectGLSL120: "glsl120",
	DialectGLSL150: "glsl150",
	DialectWGSL:    "wgsl",
}

// String returns the dialect name.
func (d Dialect) String() string {
	if int(d) < len(dialectNames) {
		return dialectNames[d]
	}
	return "unknown"
}

// ParseGLSLVersion maps a GL_SHADING_LANGUAGE_VERSION string to the newest
// GLSL dialect it supports. Vendor suffixes are ignored, and a leading
// "OpenGL ES GLSL ES" prefix is rejected since neither dialect targets ES.
//
//	"1.20"             -> DialectGLSL120
//	"1.50"             -> DialectGLSL150
//	"4.60 NVIDIA"      -> DialectGLSL150
func ParseGLSLVersion(s string) (Dialect, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "OpenGL ES") {
		return DialectUnknown, fmt.Errorf("%w: %q", ErrUnsupportedShadingLanguage, s)
	}

	var major, minor int
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return DialectUnknown, fmt.Errorf("%w: %q", ErrUnsupportedShadingLanguage, s)
	}
	// Minor is written as two digits ("1.50"); normalize "1.5" as well.
	if minor < 10 {
		minor *= 10
	}

	v := major*100 + minor
	switch {
	case v >= 150:
		return DialectGLSL150, nil
	case v >= 120:
		return DialectGLSL120, nil
	default:
		return DialectUnknown, fmt.Errorf("%w: %q", ErrUnsupportedShadingLanguage, s)
	}
}

// ShaderSource holds one shader stage written in each supported dialect.
// Empty fields mean the stage has no source for that dialect.
type ShaderSource struct {
	GLSL120 string
	GLSL150 string
	WGSL    string
}

// Select returns the source written in dialect d.
func (s ShaderSource) Select(d Dialect) (string, error) {
	var src string
	switch d {
	case DialectGLSL120:
		src = s.GLSL120
	case DialectGLSL150:
		src = s.GLSL150
	case DialectWGSL:
		src = s.WGSL
	}
	if src == "" {
		return "", fmt.Errorf("%w: %s", ErrDialectUnavailable, d)
	}
	return src, nil
}
