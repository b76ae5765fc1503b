// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package blp decodes Blizzard's BLP1 texture format well enough to
// feed the Thumbnail Engine: the fixed header, its mipmap table, and
// the uncompressed 256-color palette pixel format most 3.3.5a
// interface icons use. JPEG-compressed BLP (content type 0) and the
// DXT block-compressed variants decode to ErrUnsupported.
package blp

import (
	"encoding/binary"
	"errors"
)

// ErrUnsupported is returned for a structurally valid BLP file this
// decoder has no codec for.
var ErrUnsupported = errors.New("blp: unsupported content/pixel format")

// ErrInvalidMagic is returned when the first four bytes aren't "BLP1".
var ErrInvalidMagic = errors.New("blp: invalid magic")

// ErrTruncated is returned when the file is shorter than its own
// header fields claim.
var ErrTruncated = errors.New("blp: truncated file")

const magic = "BLP1"

const contentUncompressed = 1

// header field offsets, all little-endian uint32 after the 4-byte magic.
const (
	offContent   = 4
	offAlphaBits = 8
	offWidth     = 12
	offHeight    = 16
	offMipOffset = 28 // mipOffsets[0]; 16 entries follow
	mipTableLen  = 16 * 4
)

// Decode decodes mipmap level 0 of a BLP1 file into 8-bit RGBA, row
// major, top to bottom. It satisfies thumbnail.Decoder.
func Decode(data []byte) (rgba []byte, width, height int, err error) {
	if len(data) < 4 || string(data[:4]) != magic {
		return nil, 0, 0, ErrInvalidMagic
	}

	headerFixedEnd := offMipOffset + 2*mipTableLen
	if len(data) < headerFixedEnd {
		return nil, 0, 0, ErrTruncated
	}

	content := binary.LittleEndian.Uint32(data[offContent : offContent+4])
	if content != contentUncompressed {
		return nil, 0, 0, ErrUnsupported
	}

	alphaBits := binary.LittleEndian.Uint32(data[offAlphaBits : offAlphaBits+4])
	width = int(binary.LittleEndian.Uint32(data[offWidth : offWidth+4]))
	height = int(binary.LittleEndian.Uint32(data[offHeight : offHeight+4]))

	mipOffsetsAt := offMipOffset
	mipSizesAt := mipOffsetsAt + mipTableLen
	paletteAt := mipSizesAt + mipTableLen

	mip0Offset := int(binary.LittleEndian.Uint32(data[mipOffsetsAt : mipOffsetsAt+4]))
	mip0Size := int(binary.LittleEndian.Uint32(data[mipSizesAt : mipSizesAt+4]))
	if mip0Offset == 0 || mip0Size == 0 || mip0Offset+mip0Size > len(data) {
		return nil, 0, 0, ErrTruncated
	}
	if paletteAt+256*4 > len(data) {
		return nil, 0, 0, ErrTruncated
	}

	pixels := data[mip0Offset : mip0Offset+mip0Size]
	palette := data[paletteAt : paletteAt+256*4]

	out, err := decodePalette(pixels, palette, width, height, alphaBits != 0)
	if err != nil {
		return nil, 0, 0, err
	}
	return out, width, height, nil
}

// decodePalette expands 8-bit palette indices, plus an optional
// one-byte-per-pixel alpha plane trailing them, into RGBA. The
// palette entries are stored BGRA.
func decodePalette(pixels, palette []byte, width, height int, hasAlpha bool) ([]byte, error) {
	count := width * height
	if len(pixels) < count {
		return nil, ErrTruncated
	}
	alphaPlane := pixels[count:]
	if hasAlpha && len(alphaPlane) < count {
		return nil, ErrTruncated
	}

	out := make([]byte, count*4)
	for i := 0; i < count; i++ {
		idx := int(pixels[i])
		b := palette[idx*4+0]
		g := palette[idx*4+1]
		r := palette[idx*4+2]
		a := byte(255)
		if hasAlpha {
			a = alphaPlane[i]
		}
		out[i*4+0] = r
		out[i*4+1] = g
		out[i*4+2] = b
		out[i*4+3] = a
	}
	return out, nil
}
