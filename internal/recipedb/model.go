// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import "time"

// Ingredient is a single ingredient line of a recipe.
type Ingredient struct {
	// Name is the name of the ingredient.
	Name string `firestore:"name" json:"name"`

	// Measure is the quantity of the ingredient as free-form text.
	Measure string `firestore:"measure" json:"measure"`
}

// Recipe is a recipe from the catalog. Recipes are owned by the catalog;
// we only hold them transiently or as favorite snapshots.
type Recipe struct {
	// ID is the catalog's identifier for the recipe.
	ID string `firestore:"id" json:"id"`

	// Name is the display title of the recipe.
	Name string `firestore:"name" json:"name"`

	// ThumbnailURL is the URL of the recipe's thumbnail image.
	ThumbnailURL string `firestore:"thumbnailUrl" json:"thumbnailUrl"`

	// Category is an optional classification tag, e.g. "Seafood".
	Category string `firestore:"category" json:"category,omitempty"`

	// Region is an optional regional tag, e.g. "Japanese".
	Region string `firestore:"region" json:"region,omitempty"`

	// Ingredients are the ingredient lines of the recipe, in catalog order.
	Ingredients []Ingredient `firestore:"ingredients" json:"ingredients"`

	// Instructions are the free-text preparation steps.
	Instructions string `firestore:"instructions" json:"instructions,omitempty"`
}

// Favorite is a user's favorited recipe stored in Firestore. The recipe is
// stored as a snapshot taken at favoriting time so the favorites view does
// not re-fetch from the catalog.
type Favorite struct {
	// StoreID is the Firestore document ID, needed to target a delete.
	// It is assigned by the store, not persisted as a field.
	StoreID string `firestore:"-" json:"storeId"`

	// UserID is the ID of the user who favorited the recipe.
	UserID string `firestore:"userId" json:"userId"`

	// RecipeID is the catalog ID of the favorited recipe.
	RecipeID string `firestore:"recipeId" json:"recipeId"`

	// Recipe is the snapshot of the recipe at favoriting time.
	Recipe Recipe `firestore:"recipe" json:"recipe"`

	// CreatedAt is when the favorite was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
