// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/curioswitch/recipebox/internal/extract"
	"github.com/curioswitch/recipebox/internal/fetch"
	"github.com/curioswitch/recipebox/internal/file"
	"github.com/curioswitch/recipebox/internal/importer"
)

// cliUser owns the blobs of the in-memory store used by the CLI.
const cliUser = "cli"

var (
	flagVerbose   bool
	flagProvider  string
	flagModel     string
	flagUserAgent string
	flagTimeout   = fetch.DefaultTimeout
)

var rootCmd = &cobra.Command{
	Use:   "recipeimport",
	Short: "Import recipes from web pages or photos",
	Long: `recipeimport extracts a recipe from a web page or a photo with a generative model and
prints the draft as JSON. Nothing is saved.

Examples:
  recipeimport url https://example.com/chili
  recipeimport photo ./recipe-card.jpg --provider openai --model gpt-4o-mini
  recipeimport slug "Grandma's Apple Pie"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log each import step")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", extract.ProviderGemini, "Model provider, gemini or openai")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "gemini-2.5-flash", "Model name")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user_agent", fetch.DefaultUserAgent, "User agent for fetching pages")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", fetch.DefaultTimeout, "Timeout for each request")
}

// newImporter returns an importer keeping images in blobs, or not storing them if nil.
func newImporter(ctx context.Context, blobs file.Blobs) (*importer.Importer, error) {
	model, err := extract.NewModel(ctx, flagProvider, flagModel, "")
	if err != nil {
		return nil, err
	}
	fetcher := fetch.New(flagUserAgent, &http.Client{Timeout: flagTimeout})
	return importer.New(fetcher, extract.New(model), blobs), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
