package searchrecipes

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

func TestSearchRecipes(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Seed(recipedb.Favorite{StoreID: "doc-1", UserID: "u1", RecipeID: "52940"})
	sessions := session.NewManager(testutil.ChickenCatalog(), store, 3, nil)
	h := NewHandler(sessions, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/search?q=chicken", nil)
	w := httptest.NewRecorder()
	h.SearchRecipes(w, req)
	require.Equal(t, http.StatusOK, w.Code, "body = %s", w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 2)

	byID := map[string]RecipeResult{}
	for _, r := range resp.Recipes {
		byID[r.ID] = r
	}
	assert.True(t, byID["52940"].IsFavorite)
	assert.False(t, byID["52941"].IsFavorite)
}

func TestSearchRecipesSecondaryNarrows(t *testing.T) {
	sessions := session.NewManager(testutil.ChickenCatalog(), testutil.NewFakeStore(), 3, nil)
	h := NewHandler(sessions, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/search?q=chicken%2C+garlic", nil)
	w := httptest.NewRecorder()
	h.SearchRecipes(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "52940", resp.Recipes[0].ID)
}

func TestSearchRecipesKeyword(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Seed(recipedb.Favorite{StoreID: "doc-1", UserID: "u1", RecipeID: "52940"})
	sessions := session.NewManager(testutil.ChickenCatalog(), store, 3, nil)
	h := NewHandler(sessions, fixedIdentity("u1"))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/search?keyword=stew", nil)
	w := httptest.NewRecorder()
	h.SearchRecipes(w, req)
	require.Equal(t, http.StatusOK, w.Code, "body = %s", w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "52940", resp.Recipes[0].ID)
	assert.True(t, resp.Recipes[0].IsFavorite)
}

func TestSearchRecipesUnauthenticated(t *testing.T) {
	sessions := session.NewManager(testutil.ChickenCatalog(), testutil.NewFakeStore(), 3, nil)
	h := NewHandler(sessions, fixedIdentity(""))

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/search?q=chicken", nil)
	w := httptest.NewRecorder()
	h.SearchRecipes(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
