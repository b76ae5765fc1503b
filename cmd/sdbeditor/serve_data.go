// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/blp"
	"github.com/surrealabs/sdbeditor/internal/config"
	"github.com/surrealabs/sdbeditor/internal/dbcapi"
	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/internal/spelleditor"
	"github.com/surrealabs/sdbeditor/internal/thumbnail"
)

var serveDataPort int

var serveDataCmd = &cobra.Command{
	Use:   "serve-data",
	Short: "Run the Data API (DBC/spell/talent editing)",
	RunE:  runServeData,
}

func init() {
	serveDataCmd.Flags().IntVar(&serveDataPort, "port", 3001, "port to listen on")
	rootCmd.AddCommand(serveDataCmd)
}

func runServeData(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := editstore.New(cfg.Paths.Base.DBC, cfg.Paths.Custom.DBC, "backups")

	mirror, err := spelleditor.OpenMirror(cfg.Settings.MirrorDSN)
	if err != nil {
		return fmt.Errorf("open spell mirror: %w", err)
	}

	log := applog.New("sdbeditor-data")

	server := &dbcapi.Server{
		Store:            store,
		SpellEditor:      spelleditor.New(store, mirror),
		Thumbnails:       thumbnail.New(cfg.Paths.Base.Icons, blp.Decoder{}),
		Log:              log,
		IconDecoder:      blp.TileDecoder{Dir: cfg.Paths.Base.Icons},
		IconDir:          cfg.Paths.Base.Icons,
		ThumbnailDir:     fmt.Sprintf("%s/thumbnails", cfg.Paths.Base.Icons),
		SpellDBC:         "Spell.dbc",
		SpellIconDBC:     "SpellIcon.dbc",
		TalentDBC:        "Talent.dbc",
		TalentTabDBC:     "TalentTab.dbc",
		SpriteOutDir:     fmt.Sprintf("%s/sprites", cfg.Paths.Base.Icons),
		TalentConfigPath: "talent-config.json",
		TalentSourceDir:  "talent-templates",
		TalentRuntimeDir: "talent-runtime",
	}
	server.Thumbnails.BaseIconDir = cfg.Paths.Custom.Icons
	editstore.OnInvalidate = func(string) {
		go func() {
			if err := server.RebuildIndices(); err != nil {
				log.Error("index rebuild after write: %v", err)
			}
		}()
	}

	go func() {
		if err := server.RebuildIndices(); err != nil {
			log.Error("initial index build: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", serveDataPort)
	log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, server.Router())
}
