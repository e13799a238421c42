// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package togglefavorite

import (
	"context"
	"errors"
	"net/http"

	"github.com/curioswitch/mealsearch/internal/auth"
	"github.com/curioswitch/mealsearch/internal/httpapi"
	"github.com/curioswitch/mealsearch/internal/recipedb"
	"github.com/curioswitch/mealsearch/internal/session"
)

var errMissingRecipe = errors.New("togglefavorite: request is missing a recipe ID")

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

type Request struct {
	// Recipe is the recipe to toggle. The full record is sent so favoriting
	// stores a snapshot without another catalog round trip.
	Recipe recipedb.Recipe `json:"recipe"`
}

type Response struct {
	RecipeID   string `json:"recipeId"`
	IsFavorite bool   `json:"isFavorite"`
}

// ToggleFavorite flips the favorite state of the recipe in the request
// body. A 409 means a toggle for the same recipe is still settling; a 503
// means the store write failed and the toggle was rolled back, so the
// client may simply retry.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req Request
	if err := httpapi.ReadJSON(r, &req); err != nil || req.Recipe.ID == "" {
		httpapi.WriteJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": errMissingRecipe.Error()})
		return
	}

	sess, err := h.sessions.Session(ctx, h.identity(ctx))
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	favorited, err := sess.Toggle(ctx, req.Recipe)
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}
	httpapi.WriteJSON(ctx, w, http.StatusOK, Response{
		RecipeID:   req.Recipe.ID,
		IsFavorite: favorited,
	})
}
