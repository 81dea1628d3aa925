// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package extract

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/recipebox/internal/recipedb"
)

// Prompt is a single request to a generative model.
type Prompt struct {
	// Instruction is the system instruction.
	Instruction string

	// Text is the user content, may be empty when Image is set.
	Text string

	// Image is optional image content.
	Image []byte

	// ImageMIMEType is the media type of Image.
	ImageMIMEType string
}

// Model is a generative model returning a single text completion for a prompt.
type Model interface {
	Generate(ctx context.Context, prompt *Prompt) (string, error)
}

// NewGemini returns a Model backed by a Gemini model.
func NewGemini(genAI *genai.Client, model string) *Gemini {
	return &Gemini{
		genAI: genAI,
		model: model,
	}
}

// Gemini generates with the Gemini API, constraining output to the draft schema.
type Gemini struct {
	genAI *genai.Client
	model string
}

func (g *Gemini) Generate(ctx context.Context, prompt *Prompt) (string, error) {
	var parts []*genai.Part
	if len(prompt.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(prompt.Image, prompt.ImageMIMEType))
	}
	if prompt.Text != "" {
		parts = append(parts, genai.NewPartFromText(prompt.Text))
	}

	res, err := g.genAI.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.Instruction, genai.RoleModel),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    recipedb.DraftFieldsSchema,
	})
	if err != nil {
		return "", fmt.Errorf("extract: generating content with %s: %w", g.model, err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("extract: unexpected response from genai: %v", res)
	}
	return text, nil
}

// NewOpenAI returns a Model backed by an OpenAI chat model.
func NewOpenAI(client *openai.Client, model string) *OpenAI {
	return &OpenAI{
		client: client,
		model:  model,
	}
}

// OpenAI generates with the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

func (o *OpenAI) Generate(ctx context.Context, prompt *Prompt) (string, error) {
	var user openai.ChatCompletionMessageParamUnion
	if len(prompt.Image) > 0 {
		parts := []openai.ChatCompletionContentPartUnionParam{
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: "data:" + prompt.ImageMIMEType + ";base64," + base64.StdEncoding.EncodeToString(prompt.Image),
			}),
		}
		if prompt.Text != "" {
			parts = append(parts, openai.TextContentPart(prompt.Text))
		}
		user = openai.UserMessage(parts)
	} else {
		user = openai.UserMessage(prompt.Text)
	}

	res, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.Instruction),
			user,
		},
	})
	if err != nil {
		return "", fmt.Errorf("extract: creating chat completion with %s: %w", o.model, err)
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("extract: unexpected response from openai: %v", res)
	}
	return res.Choices[0].Message.Content, nil
}

const (
	// ProviderGemini selects Gemini models.
	ProviderGemini = "gemini"
	// ProviderOpenAI selects OpenAI models.
	ProviderOpenAI = "openai"
)

// NewModel creates a Model for provider. API keys are read from the environment, GEMINI_API_KEY
// or OPENAI_API_KEY.
func NewModel(ctx context.Context, provider string, model string, project string) (Model, error) {
	switch provider {
	case ProviderGemini, "":
		genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			Project: project,
		})
		if err != nil {
			return nil, fmt.Errorf("extract: creating genai client: %w", err)
		}
		return NewGemini(genAI, model), nil
	case ProviderOpenAI:
		oai := openai.NewClient()
		return NewOpenAI(&oai, model), nil
	default:
		return nil, fmt.Errorf("extract: unknown model provider %q", provider)
	}
}
