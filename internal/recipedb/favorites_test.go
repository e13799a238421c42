package recipedb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFavorites connects to the Firestore emulator, skipping when one is
// not running.
func testFavorites(t *testing.T) *Favorites {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "mealsearch-test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewFavorites(client)
}

// testUserID returns a user ID unique to the test run so state from prior
// runs of the emulator does not leak in.
func testUserID() string {
	return fmt.Sprintf("u-%d", time.Now().UnixNano())
}

func TestFavoritesAddAndLoadAll(t *testing.T) {
	favs := testFavorites(t)
	ctx := context.Background()
	userID := testUserID()

	recipe := Recipe{
		ID:           "52940",
		Name:         "Brown Stew Chicken",
		ThumbnailURL: "https://example.com/52940.jpg",
		Category:     "Chicken",
		Region:       "Jamaican",
		Ingredients: []Ingredient{
			{Name: "Chicken", Measure: "1 whole"},
			{Name: "Garlic", Measure: "2 cloves"},
		},
		Instructions: "Squeeze lime over chicken.",
	}

	added, err := favs.Add(ctx, userID, recipe)
	require.NoError(t, err)
	assert.NotEmpty(t, added.StoreID)
	assert.Equal(t, userID, added.UserID)
	assert.Equal(t, "52940", added.RecipeID)

	loaded, err := favs.LoadAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, added.StoreID, loaded[0].StoreID)
	assert.Equal(t, recipe, loaded[0].Recipe, "the stored snapshot should round-trip unchanged")
}

func TestFavoritesRemove(t *testing.T) {
	favs := testFavorites(t)
	ctx := context.Background()
	userID := testUserID()

	recipe := Recipe{ID: "52940", Name: "Brown Stew Chicken"}
	other := Recipe{ID: "52941", Name: "Chicken Congee"}

	_, err := favs.Add(ctx, userID, recipe)
	require.NoError(t, err)
	_, err = favs.Add(ctx, userID, other)
	require.NoError(t, err)

	require.NoError(t, favs.Remove(ctx, userID, "52940"))

	loaded, err := favs.LoadAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "52941", loaded[0].RecipeID)
}

func TestFavoritesRemoveDeletesDuplicates(t *testing.T) {
	favs := testFavorites(t)
	ctx := context.Background()
	userID := testUserID()

	// Two records for the same (user, recipe) pair, as a racing pair of
	// adds from an older client could have created.
	recipe := Recipe{ID: "52940", Name: "Brown Stew Chicken"}
	_, err := favs.Add(ctx, userID, recipe)
	require.NoError(t, err)
	_, err = favs.Add(ctx, userID, recipe)
	require.NoError(t, err)

	require.NoError(t, favs.Remove(ctx, userID, "52940"))

	loaded, err := favs.LoadAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFavoritesLoadAllScopedToUser(t *testing.T) {
	favs := testFavorites(t)
	ctx := context.Background()
	user1 := testUserID()
	user2 := user1 + "-other"

	_, err := favs.Add(ctx, user1, Recipe{ID: "52940"})
	require.NoError(t, err)
	_, err = favs.Add(ctx, user2, Recipe{ID: "52941"})
	require.NoError(t, err)

	loaded, err := favs.LoadAll(ctx, user1)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "52940", loaded[0].RecipeID)
}
