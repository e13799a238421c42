package endsession

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/mealsearch/internal/session"
)

func fixedIdentity(userID string) func(context.Context) string {
	return func(context.Context) string {
		return userID
	}
}

func TestEndSession(t *testing.T) {
	changes := make(chan session.Change, 1)
	h := NewHandler(changes, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodPost, "/api/session/end", nil)
	w := httptest.NewRecorder()
	h.EndSession(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case change := <-changes:
		assert.Equal(t, session.Change{UserID: "u1", SignedIn: false}, change)
	default:
		t.Fatal("no identity change was published")
	}
}

func TestEndSessionStreamFull(t *testing.T) {
	// A full stream must not block the request; the change is dropped.
	changes := make(chan session.Change, 1)
	changes <- session.Change{UserID: "other", SignedIn: false}
	h := NewHandler(changes, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodPost, "/api/session/end", nil)
	w := httptest.NewRecorder()
	h.EndSession(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, changes, 1)
}

func TestEndSessionUnauthenticated(t *testing.T) {
	h := NewHandler(make(chan session.Change, 1), fixedIdentity(""))

	req := httptest.NewRequest(http.MethodPost, "/api/session/end", nil)
	w := httptest.NewRecorder()
	h.EndSession(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
