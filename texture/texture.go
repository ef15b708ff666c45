// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture uploads decoded images as device textures.
//
// Decoding image files is left to the caller (image/png, image/jpeg or
// golang.org/x/image decoders). FromImage converts any image.Image to
// straight-alpha RGBA8, downscales it to fit the device's texture size
// limit and uploads it. The returned texture is owned by the caller, who
// lends it to textured draws and destroys it with Device.DestroyTexture.
package texture

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("texture: empty image")

// Option configures FromImage.
type Option func(*options)

type options struct {
	label  string
	scaler xdraw.Interpolator
}

// WithLabel sets the texture debug label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithInterpolator sets the filter used when an image must be downscaled.
// The default is xdraw.CatmullRom.
func WithInterpolator(s xdraw.Interpolator) Option {
	return func(o *options) {
		o.scaler = s
	}
}

// FromImage converts img and uploads it to dev.
func FromImage(dev device.Device, img image.Image, opts ...Option) (*device.Texture, error) {
	o := options{label: "texture", scaler: xdraw.CatmullRom}
	for _, opt := range opts {
		opt(&o)
	}

	rgba, err := Convert(img, dev.Capabilities().MaxTextureSize, o.scaler)
	if err != nil {
		return nil, err
	}
	b := rgba.Bounds()
	tex, err := dev.CreateTexture(&device.TextureDescriptor{
		Label:  o.label,
		Width:  uint32(b.Dx()), //nolint:gosec // bounded by maxSize
		Height: uint32(b.Dy()), //nolint:gosec // bounded by maxSize
		Format: gputypes.TextureFormatRGBA8Unorm,
	}, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("texture: upload %q: %w", o.label, err)
	}
	return tex, nil
}

// Convert returns img as tightly packed straight-alpha RGBA8 with its
// origin at (0,0). Images larger than maxSize in either dimension are
// scaled down with s, preserving aspect ratio. maxSize 0 means unlimited.
func Convert(img image.Image, maxSize uint32, s xdraw.Scaler) (*image.NRGBA, error) {
	src := img.Bounds()
	if src.Empty() {
		return nil, ErrEmptyImage
	}

	w, h := FitSize(src.Dx(), src.Dy(), int(maxSize))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		xdraw.Copy(dst, image.Point{}, img, src, xdraw.Src, nil)
		return dst, nil
	}
	s.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst, nil
}

// FitSize returns w×h scaled down uniformly so neither side exceeds
// maxSize. Sides never shrink below one pixel. maxSize <= 0 means
// unlimited.
func FitSize(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}
