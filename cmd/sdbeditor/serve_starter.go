// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/auth"
	"github.com/surrealabs/sdbeditor/internal/config"
	"github.com/surrealabs/sdbeditor/internal/starterapi"
	"github.com/surrealabs/sdbeditor/internal/supervisor"
)

var serveStarterPort int

var serveStarterCmd = &cobra.Command{
	Use:   "serve-starter",
	Short: "Run the Supervisor API (account login and process control)",
	RunE:  runServeStarter,
}

func init() {
	serveStarterCmd.Flags().IntVar(&serveStarterPort, "port", 5000, "port to listen on")
	rootCmd.AddCommand(serveStarterCmd)
}

func runServeStarter(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStarter(configPath)
	if err != nil {
		return fmt.Errorf("load starter config: %w", err)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Database)
	accounts, err := auth.OpenAccounts(dsn)
	if err != nil {
		return fmt.Errorf("open account db: %w", err)
	}

	authService, err := auth.NewService(accounts)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	server := &starterapi.Server{
		Auth:          authService,
		Supervisor:    supervisor.New(cfg.Paths),
		Log:           applog.New("sdbeditor-starter"),
		AdminMinLevel: cfg.Security.AdminMinLevel,
	}

	addr := fmt.Sprintf(":%d", serveStarterPort)
	server.Log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, server.Router())
}
