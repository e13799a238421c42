// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package searchrecipes

import (
	"context"
	"net/http"

	"github.com/curioswitch/mealsearch/internal/auth"
	"github.com/curioswitch/mealsearch/internal/httpapi"
	"github.com/curioswitch/mealsearch/internal/recipedb"
	"github.com/curioswitch/mealsearch/internal/session"
)

// Sessions resolves a user's session.
type Sessions interface {
	Session(ctx context.Context, userID string) (*session.Session, error)
}

func NewHandler(sessions Sessions, identity auth.Identity) *Handler {
	return &Handler{
		sessions: sessions,
		identity: identity,
	}
}

type Handler struct {
	sessions Sessions
	identity auth.Identity
}

// RecipeResult is a recipe annotated with its favorite state for the
// requesting user.
type RecipeResult struct {
	recipedb.Recipe
	IsFavorite bool `json:"isFavorite"`
}

type Response struct {
	Recipes []RecipeResult `json:"recipes"`
}

// SearchRecipes searches the catalog and cross-references results against
// the user's favorites. ?keyword= runs a free-text name search; otherwise
// ?q= is a comma-separated ingredient query. An empty request returns a
// random sample.
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Session(ctx, h.identity(ctx))
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	var recipes []recipedb.Recipe
	if keyword := r.URL.Query().Get("keyword"); keyword != "" {
		recipes, err = sess.SearchByKeyword(ctx, keyword)
	} else {
		recipes, err = sess.Search(ctx, r.URL.Query().Get("q"))
	}
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	results := make([]RecipeResult, len(recipes))
	for i, recipe := range recipes {
		results[i] = RecipeResult{
			Recipe:     recipe,
			IsFavorite: sess.IsFavorite(recipe.ID),
		}
	}
	httpapi.WriteJSON(ctx, w, http.StatusOK, Response{Recipes: results})
}
