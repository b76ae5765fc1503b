// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package blp

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBLP1 assembles a minimal palette-encoded BLP1 file of the given
// size for testing, with one palette index per pixel (index 0 is red,
// index 1 is green) and an optional alpha plane of alphaBits bits per
// pixel.
func buildBLP1(t *testing.T, width, height int, indices []byte, alphaBits uint32, alphaPlane []byte) []byte {
	t.Helper()

	palette := make([]byte, 256*4)
	// index 0: red (stored BGRA)
	palette[0*4+0], palette[0*4+1], palette[0*4+2], palette[0*4+3] = 0, 0, 255, 255
	// index 1: green
	palette[1*4+0], palette[1*4+1], palette[1*4+2], palette[1*4+3] = 0, 255, 0, 255

	header := make([]byte, offMipOffset+2*mipTableLen)
	copy(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[offContent:], contentUncompressed)
	binary.LittleEndian.PutUint32(header[offAlphaBits:], alphaBits)
	binary.LittleEndian.PutUint32(header[offWidth:], uint32(width))
	binary.LittleEndian.PutUint32(header[offHeight:], uint32(height))

	pixelData := append([]byte{}, indices...)
	pixelData = append(pixelData, alphaPlane...)

	mip0Offset := len(header) + len(palette)
	binary.LittleEndian.PutUint32(header[offMipOffset:], uint32(mip0Offset))
	binary.LittleEndian.PutUint32(header[offMipOffset+mipTableLen:], uint32(len(pixelData)))

	out := append([]byte{}, header...)
	out = append(out, palette...)
	out = append(out, pixelData...)
	return out
}

func TestDecode_UncompressedPaletteNoAlpha(t *testing.T) {
	data := buildBLP1(t, 2, 1, []byte{0, 1}, 0, nil)

	rgba, width, height, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2, width)
	assert.Equal(t, 1, height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, rgba)
}

func TestDecode_UncompressedPaletteWithAlpha(t *testing.T) {
	data := buildBLP1(t, 2, 1, []byte{0, 1}, 8, []byte{128, 64})

	rgba, _, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, byte(128), rgba[3])
	assert.Equal(t, byte(64), rgba[7])
}

func TestDecode_RejectsBadMagic(t *testing.T) {
	_, _, _, err := Decode([]byte("PNG!...................................."))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecode_RejectsTruncatedHeader(t *testing.T) {
	_, _, _, err := Decode([]byte(magic))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_JPEGContentIsUnsupported(t *testing.T) {
	data := buildBLP1(t, 2, 1, []byte{0, 1}, 0, nil)
	binary.LittleEndian.PutUint32(data[offContent:], 0)

	_, _, _, err := Decode(data)
	assert.ErrorIs(t, err, ErrUnsupported)
}
