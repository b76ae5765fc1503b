// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package blp

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
)

// Decoder adapts the package-level Decode function to
// internal/thumbnail.Decoder's Decode(blpBytes []byte) (rgba []byte, w, h int, err error).
type Decoder struct{}

func (Decoder) Decode(blpBytes []byte) (rgba []byte, width, height int, err error) {
	return Decode(blpBytes)
}

// TileDecoder adapts Decode to internal/index.IconDecoder's
// DecodeTile(iconName string) (image.Image, error) by resolving
// iconName to a file under Dir.
type TileDecoder struct {
	Dir string
}

func (d TileDecoder) DecodeTile(iconName string) (image.Image, error) {
	path := filepath.Join(d.Dir, iconName+".blp")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blp: read %s: %w", path, err)
	}
	rgba, width, height, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("blp: decode %s: %w", path, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.SetRGBA(x, y, color.RGBA{R: rgba[i], G: rgba[i+1], B: rgba[i+2], A: rgba[i+3]})
		}
	}
	return img, nil
}
