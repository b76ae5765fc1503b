// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	Versioned
	Value string `json:"value"`
}

func TestLoadOrBuild_BuildsWhenIndexMissing(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "idx.json")
	built := false

	got, err := LoadOrBuild(indexPath, nil, func(v fakeIndex) int { return v.Version }, func() (fakeIndex, error) {
		built = true
		return fakeIndex{Versioned: Versioned{Version: version}, Value: "fresh"}, nil
	})

	require.NoError(t, err)
	assert.True(t, built)
	assert.Equal(t, "fresh", got.Value)
	assert.FileExists(t, indexPath)
}

func TestLoadOrBuild_ReusesCacheWhenSourcesOlder(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.dbc")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	indexPath := filepath.Join(dir, "idx.json")

	builds := 0
	buildFn := func() (fakeIndex, error) {
		builds++
		return fakeIndex{Versioned: Versioned{Version: version}, Value: "v1"}, nil
	}

	_, err := LoadOrBuild(indexPath, []string{src}, func(v fakeIndex) int { return v.Version }, buildFn)
	require.NoError(t, err)

	touchNewer(t, indexPath, src)

	got, err := LoadOrBuild(indexPath, []string{src}, func(v fakeIndex) int { return v.Version }, buildFn)
	require.NoError(t, err)
	assert.Equal(t, 1, builds)
	assert.Equal(t, "v1", got.Value)
}

func TestLoadOrBuild_RebuildsWhenSourceNewer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.dbc")
	indexPath := filepath.Join(dir, "idx.json")

	builds := 0
	buildFn := func() (fakeIndex, error) {
		builds++
		return fakeIndex{Versioned: Versioned{Version: version}, Value: "rebuilt"}, nil
	}

	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	_, err := LoadOrBuild(indexPath, []string{src}, func(v fakeIndex) int { return v.Version }, buildFn)
	require.NoError(t, err)

	touchNewer(t, src, indexPath)

	got, err := LoadOrBuild(indexPath, []string{src}, func(v fakeIndex) int { return v.Version }, buildFn)
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
	assert.Equal(t, "rebuilt", got.Value)
}

func TestLoadOrBuild_RebuildsOnVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "idx.json")

	_, err := LoadOrBuild(indexPath, nil, func(v fakeIndex) int { return v.Version }, func() (fakeIndex, error) {
		return fakeIndex{Versioned: Versioned{Version: version - 1}, Value: "stale-version"}, nil
	})
	require.NoError(t, err)

	got, err := LoadOrBuild(indexPath, nil, func(v fakeIndex) int { return v.Version }, func() (fakeIndex, error) {
		return fakeIndex{Versioned: Versioned{Version: version}, Value: "current-version"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "current-version", got.Value)
}

// touchNewer sets a's mtime strictly after b's, sidestepping filesystems
// with coarse mtime resolution.
func touchNewer(t *testing.T, a, b string) {
	t.Helper()
	infoB, err := os.Stat(b)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(a, infoB.ModTime().Add(time.Second), infoB.ModTime().Add(time.Second)))
}
