// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

var dumpRows int

var dumpCmd = &cobra.Command{
	Use:   "dump <file.dbc>",
	Short: "Parse a WDBC file and print its header, schema, and leading records",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpRows, "rows", 10, "number of records to print (0 for all)")
	rootCmd.AddCommand(dumpCmd)
}

func tableNameFromFile(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	// A nil *schema.Schema must not reach wdbc.Read as a non-nil
	// interface, or the all-uint32 fallback is skipped.
	var sch wdbc.Schema
	if s := schema.Lookup(tableNameFromFile(path)); s != nil {
		sch = s
	}

	table, err := wdbc.Read(path, sch)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fmt.Printf("%s: %d records, %d fields, %d bytes of interned strings\n",
		path, table.Header.RecordCount, table.Header.FieldCount, table.Header.StringBlockSize)
	if sch == nil {
		fmt.Println("no registered schema; fields shown as Field_N : uint32")
	}

	for i, fd := range table.Fields {
		fmt.Printf("  [%d] %-24s %v\n", i, fd.Name, fd.Type)
	}

	limit := dumpRows
	if limit <= 0 || limit > len(table.Rows) {
		limit = len(table.Rows)
	}
	for i := 0; i < limit; i++ {
		fmt.Printf("row %d: %v\n", i, table.Rows[i])
	}
	if limit < len(table.Rows) {
		fmt.Printf("... %d more rows\n", len(table.Rows)-limit)
	}
	return nil
}
