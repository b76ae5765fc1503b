// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sdbeditor",
	Short: "Client-database editor and game-server supervisor for a WoW 3.3.5a server",
	Long: `sdbeditor edits a game server's WDBC client databases and BLP icon
assets, maintains the derived indices the editor UI needs, and can run
the small HTTP APIs that back it: the Data API (DBC/spell/talent
editing) and the Supervisor API (account login and process control
over the auth/world/armory binaries).`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json or starter-config.json (default: searched per internal/config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
