// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrees() map[int]Tree {
	return map[int]Tree{
		1: {
			ClassID:   1,
			ClassName: "Warrior",
			Tabs: map[int]Tab{
				1: {TabIdx: 1, Name: "Arms", Rows: 7, Cols: 4, Talents: []TalentNode{
					{ID: 1, Name: "Improved Heroic Strike", Row: 0, Col: 0},
				}},
			},
		},
	}
}

func TestRenderLua_IsDeterministicAcrossRuns(t *testing.T) {
	trees := sampleTrees()
	first, err := RenderLua(trees)
	require.NoError(t, err)
	second, err := RenderLua(trees)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "SURREAL_TALENT_TREES")
	assert.Contains(t, string(first), "Improved Heroic Strike")
}

func TestDeploy_WritesBothLocations(t *testing.T) {
	root := t.TempDir()
	sourceDir := filepath.Join(root, "source")
	runtimeDir := filepath.Join(root, "runtime")

	require.NoError(t, Deploy(sampleTrees(), sourceDir, runtimeDir))

	a, err := os.ReadFile(filepath.Join(sourceDir, luaFileName))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(runtimeDir, luaFileName))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderLua_EmptyTreesProducesValidShell(t *testing.T) {
	out, err := RenderLua(map[int]Tree{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "SURREAL_TALENT_TREES = {")
}
