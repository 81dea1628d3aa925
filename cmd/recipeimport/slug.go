// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curioswitch/recipebox/internal/recipedb"
	"github.com/curioswitch/recipebox/internal/slug"
	"github.com/curioswitch/recipebox/internal/store"
)

var slugCmd = &cobra.Command{
	Use:   "slug <name>...",
	Short: "Print the slugs recipes with the given names would get",
	Long: `Prints the slug for each name in order, as if a recipe were saved for each one. Repeated
names get numbered slugs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st := store.NewMemory()
		alloc := slug.NewAllocator(st)
		for _, name := range args {
			s, err := alloc.Assign(ctx, name, "", func(ctx context.Context, s string) error {
				_, err := st.Insert(ctx, &recipedb.Recipe{Name: name, Slug: s})
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(slugCmd)
}
