// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package extract turns page text or photos into recipe fields using a generative model.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/curioswitch/recipebox/internal/prompts"
	"github.com/curioswitch/recipebox/internal/recipedb"
)

// ErrUnparseableResponse is returned when the model replies with something that is not JSON.
var ErrUnparseableResponse = errors.New("failed to parse the AI response, please try again")

// NoRecipeFoundError is returned when the model reports that the input has no recipe.
type NoRecipeFoundError struct {
	// Reason is the explanation given by the model.
	Reason string
}

func (e *NoRecipeFoundError) Error() string {
	return e.Reason
}

// AICallError is returned when the model could not be called.
type AICallError struct {
	Err error
}

func (e *AICallError) Error() string {
	return fmt.Sprintf("AI extraction failed: %v", e.Err)
}

func (e *AICallError) Unwrap() error {
	return e.Err
}

// Kind is the outcome of an extraction.
type Kind int

const (
	// KindSuccess means fields were extracted.
	KindSuccess Kind = iota
	// KindEmpty means the model reported there is no recipe.
	KindEmpty
	// KindMalformed means the model reply could not be parsed.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindEmpty:
		return "empty"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the parsed reply of a model.
type Result struct {
	Kind Kind

	// Fields are set for KindSuccess.
	Fields recipedb.DraftFields

	// Reason is set for KindEmpty.
	Reason string

	// Raw is the unparsed reply, set for KindMalformed.
	Raw string
}

// Err returns the error for an unsuccessful result, or nil.
func (r Result) Err() error {
	switch r.Kind {
	case KindEmpty:
		return &NoRecipeFoundError{Reason: r.Reason}
	case KindMalformed:
		return ErrUnparseableResponse
	case KindSuccess:
	}
	return nil
}

// New returns an Extractor using model.
func New(model Model) *Extractor {
	return &Extractor{
		model: model,
	}
}

// Extractor extracts recipe fields with a generative model. A failure to call the model is
// returned as an *AICallError, any reply from the model is returned as a Result.
type Extractor struct {
	model Model
}

// FromText extracts a recipe from the plain text content of a web page.
func (e *Extractor) FromText(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{Kind: KindEmpty, Reason: prompts.NoRecipeFound}, nil
	}
	return e.extract(ctx, &Prompt{
		Instruction: prompts.ExtractRecipeFromPage(),
		Text:        "Webpage content:\n\n" + text,
	}, prompts.NoRecipeFound)
}

// FromImage extracts a recipe from a photo.
func (e *Extractor) FromImage(ctx context.Context, image []byte, mimeType string) (Result, error) {
	if len(image) == 0 {
		return Result{Kind: KindEmpty, Reason: prompts.NoRecipeFoundInPhoto}, nil
	}
	return e.extract(ctx, &Prompt{
		Instruction:   prompts.ExtractRecipeFromPhoto(),
		Text:          "Extract the recipe from this photo.",
		Image:         image,
		ImageMIMEType: mimeType,
	}, prompts.NoRecipeFoundInPhoto)
}

func (e *Extractor) extract(ctx context.Context, prompt *Prompt, noRecipe string) (Result, error) {
	reply, err := e.model.Generate(ctx, prompt)
	if err != nil {
		return Result{}, &AICallError{Err: err}
	}
	res := ParseResponse(reply, noRecipe)
	return res, nil
}

var (
	openingFenceRe = regexp.MustCompile("^```(?:json)?[ \\t]*\\n?")
	closingFenceRe = regexp.MustCompile("\\n?```\\s*$")
)

// ParseResponse parses a model reply. Code fences around the JSON are ignored, an "error"
// property means there is no recipe, and missing fields are left empty. A reply without any
// recipe content is treated as having no recipe, with noRecipe as the reason.
func ParseResponse(reply string, noRecipe string) Result {
	text := strings.TrimSpace(reply)
	text = openingFenceRe.ReplaceAllString(text, "")
	text = closingFenceRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return Result{Kind: KindMalformed, Raw: reply}
	}

	if reason, ok := obj["error"]; ok && reason != nil && reason != false && reason != "" {
		msg, _ := reason.(string)
		if msg == "" {
			msg = noRecipe
		}
		return Result{Kind: KindEmpty, Reason: msg}
	}

	fields := recipedb.DraftFields{
		Name:         stringField(obj["name"]),
		Source:       stringField(obj["source"]),
		Description:  stringField(obj["description"]),
		Ingredients:  stringField(obj["ingredients"]),
		Instructions: stringField(obj["instructions"]),
	}
	if fields.Empty() {
		return Result{Kind: KindEmpty, Reason: noRecipe}
	}
	return Result{Kind: KindSuccess, Fields: fields}
}

// stringField reads a property that should be a string. Models occasionally return lists
// for line-oriented fields, these are joined one item per line.
func stringField(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringField(item); s != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
