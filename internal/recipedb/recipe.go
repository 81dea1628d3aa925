// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"slices"
	"time"

	"google.golang.org/genai"
)

// Category is the broad meal or course type of a recipe.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategoryAppetizer Category = "Appetizer"
	CategorySideDish  Category = "Side Dish"
	CategoryDessert   Category = "Dessert"
	CategorySnack     Category = "Snack"
	CategoryBeverage  Category = "Beverage"
	CategoryBread     Category = "Bread"
	CategorySauce     Category = "Sauce & Condiment"
	CategorySoup      Category = "Soup & Stew"
	CategorySalad     Category = "Salad"
)

// AllCategories is the canonical category list, in display order.
var AllCategories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryAppetizer,
	CategorySideDish,
	CategoryDessert,
	CategorySnack,
	CategoryBeverage,
	CategoryBread,
	CategorySauce,
	CategorySoup,
	CategorySalad,
}

// Valid returns whether c is empty or one of the canonical categories.
func (c Category) Valid() bool {
	return c == "" || slices.Contains(AllCategories, c)
}

// Recipe represents a recipe stored in Firestore.
type Recipe struct {
	// ID is the unique identifier of the recipe, assigned by the store.
	ID string `firestore:"id" json:"id"`

	// Slug is the human-facing identifier of the recipe, unique across all recipes.
	Slug string `firestore:"slug" json:"slug"`

	// UserID is the ID of the user who owns the recipe. It never changes after creation.
	UserID string `firestore:"userId" json:"userId"`

	// Name is the name of the recipe. It may contain simple inline markup.
	Name string `firestore:"name" json:"name"`

	// Source is display markup for where the recipe came from.
	Source string `firestore:"source" json:"source"`

	// Description is the description of the recipe.
	Description string `firestore:"description" json:"description"`

	// Ingredients are the ingredients, one per line.
	Ingredients string `firestore:"ingredients" json:"ingredients"`

	// Instructions are the numbered steps, one per line.
	Instructions string `firestore:"instructions" json:"instructions"`

	// Category is the optional category of the recipe.
	Category Category `firestore:"category,omitempty" json:"category,omitempty"`

	// Tags are optional free-form tags.
	Tags []string `firestore:"tags,omitempty" json:"tags,omitempty"`

	// ImageRef is the storage handle of the main image. Deleting the recipe deletes the image.
	ImageRef string `firestore:"imageRef,omitempty" json:"imageRef,omitempty"`

	// CreatedAt is the time the recipe was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`

	// UpdatedAt is the time the recipe was last updated.
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Draft is a set of recipe fields produced by an import that has not been saved yet.
type Draft struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`

	// ImageRef is the storage handle of the imported image, if one was stored.
	ImageRef string `json:"imageRef,omitempty"`

	// ImageURL is the display URL of the imported image, if one was found.
	ImageURL string `json:"imageUrl,omitempty"`
}

// DraftFields are the text fields a model extracts for a Draft.
type DraftFields struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// Empty returns whether none of the fields that make up a recipe were extracted.
// Source is not considered since a model can always name a source.
func (f DraftFields) Empty() bool {
	return f.Name == "" && f.Description == "" && f.Ingredients == "" && f.Instructions == ""
}

// Complete returns whether all of the fields that make up a recipe were extracted.
func (f DraftFields) Complete() bool {
	return f.Name != "" && f.Description != "" && f.Ingredients != "" && f.Instructions != ""
}

// DraftFieldsSchema is the response schema for models extracting DraftFields. The error
// property is set instead of the others when the input does not contain a recipe.
var DraftFieldsSchema = &genai.Schema{
	Type:        "object",
	Description: "A recipe extracted from a web page or photo.",
	Properties: map[string]*genai.Schema{
		"name": {
			Type:        "string",
			Description: "The recipe title.",
		},
		"source": {
			Type:        "string",
			Description: "The website or source name, e.g. AllRecipes or NYT Cooking.",
		},
		"description": {
			Type:        "string",
			Description: "A brief 1-3 sentence description of the dish.",
		},
		"ingredients": {
			Type:        "string",
			Description: "The full ingredients list, each ingredient on its own line.",
		},
		"instructions": {
			Type:        "string",
			Description: "The full step-by-step instructions, numbered, each step on its own line.",
		},
		"error": {
			Type:        "string",
			Description: "Set only when there is no recipe in the input, explaining why.",
		},
	},
}
