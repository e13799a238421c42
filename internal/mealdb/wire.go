// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package mealdb

import (
	"fmt"
	"strings"

	"github.com/curioswitch/mealsearch/internal/recipedb"
)

// maxIngredients is the number of numbered ingredient field pairs the
// catalog's wire format carries (strIngredient1..20, strMeasure1..20).
const maxIngredients = 20

// strField returns the named field of a meal record as a string, or the
// empty string for absent or null fields.
func strField(meal map[string]any, key string) string {
	s, _ := meal[key].(string)
	return s
}

// recipeFromMeal converts a full meal record into a Recipe. An ingredient
// row is kept only if its name is non-empty after trimming.
func recipeFromMeal(meal map[string]any) recipedb.Recipe {
	var ingredients []recipedb.Ingredient
	for i := 1; i <= maxIngredients; i++ {
		name := strings.TrimSpace(strField(meal, fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		ingredients = append(ingredients, recipedb.Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(strField(meal, fmt.Sprintf("strMeasure%d", i))),
		})
	}

	return recipedb.Recipe{
		ID:           strField(meal, "idMeal"),
		Name:         strField(meal, "strMeal"),
		ThumbnailURL: strField(meal, "strMealThumb"),
		Category:     strField(meal, "strCategory"),
		Region:       strField(meal, "strArea"),
		Ingredients:  ingredients,
		Instructions: strField(meal, "strInstructions"),
	}
}
