// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"context"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mealsearch/internal/session"
)

// Identity resolves the current user's ID from a request context. Handlers
// take it as a dependency so tests can substitute a fixed identity.
type Identity func(ctx context.Context) string

// UserID returns the Firebase UID of the authenticated user, or the empty
// string on unauthenticated paths.
func UserID(ctx context.Context) string {
	if tok := firebaseauth.TokenFromContext(ctx); tok != nil {
		return tok.UID
	}
	return ""
}

// AnnounceSignIn returns middleware that publishes a sign-in change the
// first time a verified user arrives without an active session, so the
// session manager can warm their favorites view. active reports whether
// the user already has a session. The send never blocks: if the stream is
// full the change is dropped, and the session is instead created lazily by
// the first handler that needs it.
func AnnounceSignIn(identity Identity, active func(userID string) bool, changes chan<- session.Change) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := identity(r.Context()); userID != "" && !active(userID) {
				select {
				case changes <- session.Change{UserID: userID, SignedIn: true}:
				default:
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}