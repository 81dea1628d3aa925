// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/curioswitch/recipebox/internal/file"
)

var photoCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Import the recipe in a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading photo: %w", err)
		}

		blobs := file.NewMemory()
		_, handle, err := blobs.UploadURL(ctx, cliUser)
		if err != nil {
			return err
		}
		if _, err := blobs.Store(ctx, handle, http.DetectContentType(data), data); err != nil {
			return err
		}

		imp, err := newImporter(ctx, blobs)
		if err != nil {
			return err
		}
		draft, err := imp.ImportFromPhoto(ctx, cliUser, handle)
		if err != nil {
			return err
		}
		// The photo only exists in memory.
		draft.ImageRef = ""
		draft.ImageURL = ""
		return printJSON(cmd.OutOrStdout(), draft)
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
}
