// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package endsession

import (
	"log/slog"
	"net/http"

	"github.com/curioswitch/mealsearch/internal/auth"
	"github.com/curioswitch/mealsearch/internal/httpapi"
	"github.com/curioswitch/mealsearch/internal/session"
)

func NewHandler(changes chan<- session.Change, identity auth.Identity) *Handler {
	return &Handler{
		changes:  changes,
		identity: identity,
	}
}

type Handler struct {
	changes  chan<- session.Change
	identity auth.Identity
}

// EndSession notifies the session manager that the user signed out so the
// in-memory favorites view is cleared. The stored favorites are untouched.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := h.identity(ctx)
	if userID == "" {
		httpapi.WriteError(ctx, w, session.ErrUnauthenticated)
		return
	}

	// Never block the request on the stream. A dropped change only delays
	// the cleanup of an in-memory view, not the sign-out itself.
	select {
	case h.changes <- session.Change{UserID: userID, SignedIn: false}:
	default:
		slog.WarnContext(ctx, "endsession: identity change stream full, dropping sign-out", "userId", userID)
	}
	httpapi.WriteJSON(ctx, w, http.StatusOK, struct{}{})
}