package listfavorites

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/mealsearch/internal/recipedb"
	"github.com/curioswitch/mealsearch/internal/session"
	"github.com/curioswitch/mealsearch/internal/testutil"
)

func fixedIdentity(userID string) func(context.Context) string {
	return func(context.Context) string {
		return userID
	}
}

func TestListFavoritesServesSnapshots(t *testing.T) {
	// The stored snapshot names the recipe differently than the catalog
	// does now; the favorites view must keep serving the snapshot.
	store := testutil.NewFakeStore()
	store.Seed(recipedb.Favorite{
		StoreID:  "doc-1",
		UserID:   "u1",
		RecipeID: "52940",
		Recipe:   recipedb.Recipe{ID: "52940", Name: "Brown Stew Chicken (2019)"},
	})
	sessions := session.NewManager(testutil.ChickenCatalog(), store, 3, nil)
	h := NewHandler(sessions, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	w := httptest.NewRecorder()
	h.ListFavorites(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Favorites, 1)
	assert.Equal(t, "Brown Stew Chicken (2019)", resp.Favorites[0].Recipe.Name)
}

func TestListFavoritesEmpty(t *testing.T) {
	sessions := session.NewManager(testutil.ChickenCatalog(), testutil.NewFakeStore(), 3, nil)
	h := NewHandler(sessions, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	w := httptest.NewRecorder()
	h.ListFavorites(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"favorites":[]}`, w.Body.String())
}
