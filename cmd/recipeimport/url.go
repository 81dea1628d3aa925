// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Import the recipe on a web page",
	Long: `Fetches the page, extracts the recipe and prints the draft. The image of the page is
located but not downloaded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		imp, err := newImporter(ctx, nil)
		if err != nil {
			return err
		}
		draft, err := imp.ImportFromURL(ctx, cliUser, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), draft)
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
