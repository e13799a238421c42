package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/mealsearch/internal/session"
)

func fixedIdentity(userID string) Identity {
	return func(context.Context) string {
		return userID
	}
}

func announceRequest(t *testing.T, mw func(http.Handler) http.Handler) {
	t.Helper()
	var reached bool
	h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reached = true
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recipes/search", nil))
	assert.True(t, reached, "middleware must always pass the request through")
}

func TestAnnounceSignInFirstRequest(t *testing.T) {
	changes := make(chan session.Change, 1)
	mw := AnnounceSignIn(fixedIdentity("u1"), func(string) bool { return false }, changes)

	announceRequest(t, mw)

	select {
	case change := <-changes:
		assert.Equal(t, session.Change{UserID: "u1", SignedIn: true}, change)
	default:
		t.Fatal("no sign-in change was published")
	}
}

func TestAnnounceSignInSkipsActiveSession(t *testing.T) {
	changes := make(chan session.Change, 1)
	mw := AnnounceSignIn(fixedIdentity("u1"), func(userID string) bool {
		require.Equal(t, "u1", userID)
		return true
	}, changes)

	announceRequest(t, mw)
	assert.Empty(t, changes)
}

func TestAnnounceSignInSkipsUnauthenticated(t *testing.T) {
	changes := make(chan session.Change, 1)
	mw := AnnounceSignIn(fixedIdentity(""), func(string) bool { return false }, changes)

	announceRequest(t, mw)
	assert.Empty(t, changes)
}

func TestAnnounceSignInStreamFull(t *testing.T) {
	// A full stream drops the change instead of blocking the request; the
	// session is then created lazily on first use.
	changes := make(chan session.Change, 1)
	changes <- session.Change{UserID: "other", SignedIn: true}
	mw := AnnounceSignIn(fixedIdentity("u1"), func(string) bool { return false }, changes)

	announceRequest(t, mw)
	assert.Len(t, changes, 1)
}
