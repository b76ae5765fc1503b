// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dbcapi

import (
	"fmt"
	"net/http"

	"github.com/surrealabs/sdbeditor/internal/index"
)

// handleUpdateManifest kicks off a rebuild of every derived index
// (icon list, icon manifest, spell-icon index, spell-name index,
// talent sprite atlases) in the background and returns immediately.
// The previous Indices snapshot keeps serving reads until the rebuild
// finishes and SetIndices swaps it in.
func (s *Server) handleUpdateManifest(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := s.RebuildIndices(); err != nil {
			s.Log.Error("rebuildIndices: %v", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "rebuild started"})
}

// RebuildIndices rebuilds every derived index from scratch and installs
// the result via SetIndices. cmd/sdbeditor's build-index command calls
// it directly and waits for it; serve-data starts it in a background
// goroutine and begins serving before it finishes.
func (s *Server) RebuildIndices() error {
	iconList, err := index.BuildIconList(s.IconDir)
	if err != nil {
		return fmt.Errorf("icon list: %w", err)
	}

	spellPath := s.Store.EffectivePath(s.SpellDBC)
	spellIconPath := s.Store.EffectivePath(s.SpellIconDBC)

	icons, err := index.BuildSpellIconIndex(spellPath, spellIconPath)
	if err != nil {
		return fmt.Errorf("spell icon index: %w", err)
	}

	names, err := index.BuildSpellNameIndex(spellPath, icons)
	if err != nil {
		return fmt.Errorf("spell name index: %w", err)
	}

	iconMeta, err := index.BuildIconManifest(iconList, s.ThumbnailDir, spellIconPath)
	if err != nil {
		return fmt.Errorf("icon manifest: %w", err)
	}

	talentPath := s.Store.EffectivePath(s.TalentDBC)
	talentTabPath := s.Store.EffectivePath(s.TalentTabDBC)

	sprites, err := index.BuildSpriteAtlases(talentPath, talentTabPath, icons, s.IconDecoder, s.SpriteOutDir)
	if err != nil {
		return fmt.Errorf("sprite atlases: %w", err)
	}

	s.SetIndices(Indices{
		Icons:      icons,
		SpellNames: names,
		IconList:   iconList,
		IconMeta:   iconMeta,
		Sprites:    sprites,
	})
	s.Log.Info("rebuildIndices: done")
	return nil
}
