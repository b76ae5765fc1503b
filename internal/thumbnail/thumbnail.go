// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package thumbnail implements the Thumbnail Engine:
// for every *.blp in an icon directory, ensure a 64x64 PNG exists under
// thumbnails/. The BLP bitstream itself is out of scope; Decoder
// below is that seam.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const tileSize = 64

// Decoder decodes one BLP file's mipmap 0 into raw RGBA bytes plus its
// dimensions. Production wiring supplies a real BLP decoder; tests
// supply a fake.
type Decoder interface {
	Decode(blpBytes []byte) (rgba []byte, width, height int, err error)
}

// Engine generates and maintains 64x64 PNG thumbnails for an icon
// directory. BaseIconDir, if set, is consulted when a BLP is missing
// or zero-byte in IconDir.
type Engine struct {
	IconDir      string
	BaseIconDir  string
	ThumbnailDir string
	Decoder      Decoder
}

// New returns an Engine rooted at iconDir, writing thumbnails under
// iconDir/thumbnails.
func New(iconDir string, decoder Decoder) *Engine {
	return &Engine{
		IconDir:      iconDir,
		ThumbnailDir: filepath.Join(iconDir, "thumbnails"),
		Decoder:      decoder,
	}
}

// BatchResult is the {generated, skipped, failed} report a batch run returns.
type BatchResult struct {
	Generated int
	Skipped   int
	Failed    int
	Failures  map[string]error
}

// EnsureAll walks every *.blp in e.IconDir and ensures a corresponding
// thumbnail exists, per file outcome aggregated into a BatchResult. One
// bad BLP never aborts the batch.
func (e *Engine) EnsureAll() (BatchResult, error) {
	entries, err := os.ReadDir(e.IconDir)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Failures: map[string]error{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".blp") {
			continue
		}
		switch outcome, err := e.EnsureOne(entry.Name()); {
		case err != nil:
			result.Failed++
			result.Failures[entry.Name()] = err
		case outcome == outcomeSkipped:
			result.Skipped++
		default:
			result.Generated++
		}
	}
	return result, nil
}

type outcome int

const (
	outcomeGenerated outcome = iota
	outcomeSkipped
)

// EnsureOne generates thumbnails/<base>.png for one BLP file if it does
// not already exist with non-zero size.
func (e *Engine) EnsureOne(blpName string) (outcome, error) {
	base := strings.TrimSuffix(blpName, filepath.Ext(blpName))
	thumbPath := filepath.Join(e.ThumbnailDir, base+".png")

	if info, err := os.Stat(thumbPath); err == nil && info.Size() > 0 {
		return outcomeSkipped, nil
	}

	data, err := e.readBLP(blpName)
	if err != nil {
		return 0, err
	}

	img, err := e.decode(data)
	if err != nil {
		return 0, err
	}

	tile := imaging.Fit(img, tileSize, tileSize, imaging.Lanczos)
	canvas := imaging.New(tileSize, tileSize, color.Transparent)
	canvas = imaging.PasteCenter(canvas, tile)

	if err := writePNGAtomic(thumbPath, canvas); err != nil {
		return 0, fmt.Errorf("thumbnail: write %s: %w", thumbPath, err)
	}
	return outcomeGenerated, nil
}

// readBLP reads blpName from IconDir, falling back to BaseIconDir when
// the primary copy is missing or zero-byte.
func (e *Engine) readBLP(blpName string) ([]byte, error) {
	primary := filepath.Join(e.IconDir, blpName)
	if data, err := os.ReadFile(primary); err == nil && len(data) > 0 {
		return data, nil
	}

	if e.BaseIconDir != "" {
		fallback := filepath.Join(e.BaseIconDir, blpName)
		if data, err := os.ReadFile(fallback); err == nil && len(data) > 0 {
			return data, nil
		}
	}

	return nil, fmt.Errorf("thumbnail: %s missing or empty with no usable fallback", blpName)
}

func (e *Engine) decode(blpBytes []byte) (image.Image, error) {
	rgba, w, h, err := e.Decoder.Decode(blpBytes)
	if err != nil {
		return nil, fmt.Errorf("thumbnail: decode blp: %w", err)
	}
	if w <= 0 || h <= 0 || len(rgba) < w*h*4 {
		return nil, fmt.Errorf("thumbnail: decoded blp has invalid dimensions %dx%d", w, h)
	}
	img := &image.RGBA{
		Pix:    rgba,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	return img, nil
}

func writePNGAtomic(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
