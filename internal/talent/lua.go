// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"
)

const luaFileName = "SurrealTalentConfig_AIO.lua"

var luaTemplate = template.Must(template.New("talents").Parse(`-- Generated by sdbeditor. Do not edit by hand.
SURREAL_TALENT_TREES = {
{{- range .Classes}}
  [{{.ClassID}}] = {
    className = "{{.ClassName}}",
    tabs = {
{{- range .Tabs}}
      [{{.TabIdx}}] = {
        name = "{{.Name}}",
        rows = {{.Rows}},
        cols = {{.Cols}},
        talents = {
{{- range .Talents}}
          { id = {{.ID}}, name = "{{.Name}}", row = {{.Row}}, col = {{.Col}} },
{{- end}}
        },
      },
{{- end}}
{{- if .ClassTree}}
    classTree = {
{{- range .ClassTree}}
      { id = {{.ID}}, name = "{{.Name}}", row = {{.Row}}, col = {{.Col}} },
{{- end}}
    },
{{- end}}
  },
{{- end}}
}
`))

// luaClassView and luaTabView give the template a pre-sorted,
// slice-shaped view of the map-keyed Tree/Tab structures — Go map
// iteration order is not stable, so emission must flatten to slices
// before rendering to stay byte-deterministic across runs.
type luaClassView struct {
	ClassID   int
	ClassName string
	Tabs      []luaTabView
	ClassTree []TalentNode
}

type luaTabView struct {
	TabIdx  int
	Name    string
	Rows    int
	Cols    int
	Talents []TalentNode
}

// RenderLua emits the `SURREAL_TALENT_TREES` Lua source for the given
// normalized trees, sorted deterministically by class id and tab
// index.
func RenderLua(trees map[int]Tree) ([]byte, error) {
	classIDs := make([]int, 0, len(trees))
	for id := range trees {
		classIDs = append(classIDs, id)
	}
	sort.Ints(classIDs)

	classes := make([]luaClassView, 0, len(classIDs))
	for _, id := range classIDs {
		tree := trees[id]
		tabIdxs := make([]int, 0, len(tree.Tabs))
		for idx := range tree.Tabs {
			tabIdxs = append(tabIdxs, idx)
		}
		sort.Ints(tabIdxs)

		tabs := make([]luaTabView, 0, len(tabIdxs))
		for _, idx := range tabIdxs {
			t := tree.Tabs[idx]
			tabs = append(tabs, luaTabView{
				TabIdx: t.TabIdx, Name: t.Name, Rows: t.Rows, Cols: t.Cols, Talents: t.Talents,
			})
		}

		classes = append(classes, luaClassView{
			ClassID: tree.ClassID, ClassName: tree.ClassName, Tabs: tabs, ClassTree: tree.ClassTree,
		})
	}

	var buf bytes.Buffer
	if err := luaTemplate.Execute(&buf, struct{ Classes []luaClassView }{Classes: classes}); err != nil {
		return nil, fmt.Errorf("talent: render lua: %w", err)
	}
	return buf.Bytes(), nil
}

// Deploy renders trees to Lua and writes it to both sourceDir and
// runtimeDir, atomically in each.
func Deploy(trees map[int]Tree, sourceDir, runtimeDir string) error {
	data, err := RenderLua(trees)
	if err != nil {
		return err
	}
	for _, dir := range []string{sourceDir, runtimeDir} {
		if err := writeAtomic(filepath.Join(dir, luaFileName), data); err != nil {
			return err
		}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("talent: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("talent: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("talent: rename %s: %w", tmp, err)
	}
	return nil
}
