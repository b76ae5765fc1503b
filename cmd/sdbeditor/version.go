// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the release build via -ldflags; "dev" covers
// every other build.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sdbeditor version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sdbeditor", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
