// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/blp"
	"github.com/surrealabs/sdbeditor/internal/config"
	"github.com/surrealabs/sdbeditor/internal/dbcapi"
	"github.com/surrealabs/sdbeditor/internal/editstore"
)

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Rebuild the icon list, icon manifest, spell-icon, spell-name, and sprite-atlas indices",
	RunE:  runBuildIndex,
}

func init() {
	rootCmd.AddCommand(buildIndexCmd)
}

func runBuildIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := editstore.New(cfg.Paths.Base.DBC, cfg.Paths.Custom.DBC, "backups")
	log := applog.New("sdbeditor-build-index")

	server := &dbcapi.Server{
		Store:        store,
		Log:          log,
		IconDecoder:  blp.TileDecoder{Dir: cfg.Paths.Base.Icons},
		IconDir:      cfg.Paths.Base.Icons,
		ThumbnailDir: fmt.Sprintf("%s/thumbnails", cfg.Paths.Base.Icons),
		SpellDBC:     "Spell.dbc",
		SpellIconDBC: "SpellIcon.dbc",
		TalentDBC:    "Talent.dbc",
		TalentTabDBC: "TalentTab.dbc",
		SpriteOutDir: fmt.Sprintf("%s/sprites", cfg.Paths.Base.Icons),
	}

	if err := server.RebuildIndices(); err != nil {
		return fmt.Errorf("rebuild indices: %w", err)
	}
	fmt.Println("index rebuild complete")
	return nil
}
