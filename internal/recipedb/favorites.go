// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// ErrUnavailable indicates the favorites store could not be reached.
// Callers decide whether to retry; the adapter never does.
var ErrUnavailable = errors.New("recipedb: favorites store unavailable")

const favoritesCollection = "favorites"

// Favorites reads and writes favorite records in a flat Firestore collection.
// Uniqueness of (user, recipe) is not enforced here; Remove deletes every
// matching document so duplicates from older clients still collapse.
type Favorites struct {
	store *firestore.Client
}

func NewFavorites(store *firestore.Client) *Favorites {
	return &Favorites{
		store: store,
	}
}

// LoadAll returns all favorites of the user. The result set is expected to
// be small, so no pagination is applied.
func (f *Favorites) LoadAll(ctx context.Context, userID string) ([]Favorite, error) {
	iter := f.store.Collection(favoritesCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var favs []Favorite
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("recipedb: loading favorites: %w: %w", ErrUnavailable, err)
		}

		var fav Favorite
		if err := doc.DataTo(&fav); err != nil {
			return nil, fmt.Errorf("recipedb: decoding favorite: %w: %w", ErrUnavailable, err)
		}
		fav.StoreID = doc.Ref.ID
		favs = append(favs, fav)
	}
	return favs, nil
}

// Add creates a favorite record for the recipe and returns it with the
// store-assigned document ID filled in. The caller is responsible for
// checking that the recipe is not already favorited.
func (f *Favorites) Add(ctx context.Context, userID string, recipe Recipe) (Favorite, error) {
	fav := Favorite{
		UserID:    userID,
		RecipeID:  recipe.ID,
		Recipe:    recipe,
		CreatedAt: time.Now(),
	}

	ref, _, err := f.store.Collection(favoritesCollection).Add(ctx, fav)
	if err != nil {
		return Favorite{}, fmt.Errorf("recipedb: saving favorite: %w: %w", ErrUnavailable, err)
	}
	fav.StoreID = ref.ID
	return fav, nil
}

// Remove deletes every favorite record of the user for the recipe.
func (f *Favorites) Remove(ctx context.Context, userID string, recipeID string) error {
	iter := f.store.Collection(favoritesCollection).
		Where("userId", "==", userID).
		Where("recipeId", "==", recipeID).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("recipedb: finding favorites to delete: %w: %w", ErrUnavailable, err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("recipedb: deleting favorite: %w: %w", ErrUnavailable, err)
		}
	}
	return nil
}
