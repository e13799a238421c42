// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listfavorites

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

type Response struct {
	Favorites []recipedb.Favorite `json:"favorites"`
}

// ListFavorites returns the user's favorites. Only the stored snapshots are
// served; the catalog is never re-fetched for this view, so a favorite
// keeps showing the recipe as it was when favorited.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Session(ctx, h.identity(ctx))
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	favorites := sess.Favorites()
	if favorites == nil {
		favorites = []recipedb.Favorite{}
	}
	httpapi.WriteJSON(ctx, w, http.StatusOK, Response{Favorites: favorites})
}