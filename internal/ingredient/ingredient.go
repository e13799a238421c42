// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package ingredient parses ingredient search queries and matches them
// against recipes.
package ingredient

import (
	"strings"

	"github.com/curioswitch/mealsearch/internal/recipedb"
)

// Query is a parsed ingredient search query. The primary ingredient drives
// the catalog filter call; secondary ingredients only narrow the candidates
// the filter returned.
type Query struct {
	// Primary is the first ingredient of the query, normalized.
	Primary string

	// Secondary are the remaining ingredients of the query, normalized.
	Secondary []string
}

// IsEmpty reports whether the query has no ingredients at all.
func (q Query) IsEmpty() bool {
	return q.Primary == ""
}

// ParseQuery splits a raw query on commas, normalizing each segment and
// discarding empty ones. Normalization is idempotent, so parsing the output
// of a previous parse yields the same segments.
func ParseQuery(raw string) Query {
	var parts []string
	for _, seg := range strings.Split(raw, ",") {
		if s := Normalize(seg); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return Query{}
	}
	q := Query{Primary: parts[0]}
	if len(parts) > 1 {
		q.Secondary = parts[1:]
	}
	return q
}

// Normalize trims and lowercases an ingredient name. Matching is exact
// after normalization, with no fuzzy or singular/plural handling.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Matches reports whether the recipe contains every required ingredient.
// An empty required set matches any recipe; a recipe with no ingredients
// matches only the empty set.
func Matches(recipe recipedb.Recipe, required []string) bool {
	if len(required) == 0 {
		return true
	}

	have := make(map[string]struct{}, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		have[Normalize(ing.Name)] = struct{}{}
	}
	for _, want := range required {
		if _, ok := have[Normalize(want)]; !ok {
			return false
		}
	}
	return true
}
