// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package session reconciles recipe search results with a user's favorites,
// keeping the in-memory favorites view consistent with the remote store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/mealsearch/internal/ingredient"
	"github.com/curioswitch/mealsearch/internal/mealdb"
	"github.com/curioswitch/mealsearch/internal/recipedb"
)

var (
	// ErrToggleInFlight indicates a favorite toggle for the same recipe has
	// an outstanding remote call. The caller should retry after it settles.
	ErrToggleInFlight = errors.New("session: favorite toggle already in flight")

	// ErrUnauthenticated indicates no user identity was supplied.
	ErrUnauthenticated = errors.New("session: no authenticated user")
)

// Catalog is the recipe catalog surface the session needs.
type Catalog interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.RecipeStub, error)
	SearchByName(ctx context.Context, keyword string) ([]recipedb.Recipe, error)
	LookupDetail(ctx context.Context, id string) (*recipedb.Recipe, error)
	RandomSample(ctx context.Context, count int) ([]recipedb.Recipe, error)
}

// FavoriteStore is the favorites persistence surface the session needs.
type FavoriteStore interface {
	LoadAll(ctx context.Context, userID string) ([]recipedb.Favorite, error)
	Add(ctx context.Context, userID string, recipe recipedb.Recipe) (recipedb.Favorite, error)
	Remove(ctx context.Context, userID string, recipeID string) error
}

// Session holds one authenticated user's favorites view. All mutations of
// the view go through Toggle, which serializes them per recipe.
type Session struct {
	userID      string
	catalog     Catalog
	store       FavoriteStore
	randomCount int

	mu        sync.Mutex
	loaded    bool
	favorites []recipedb.Favorite
	pending   map[string]struct{}
}

func newSession(userID string, catalog Catalog, store FavoriteStore, randomCount int) *Session {
	return &Session{
		userID:      userID,
		catalog:     catalog,
		store:       store,
		randomCount: randomCount,
		pending:     map[string]struct{}{},
	}
}

// ensureLoaded fetches the user's favorites from the store on first use.
// A failed load is retried on the next call.
func (s *Session) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	favorites, err := s.store.LoadAll(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("session: loading favorites: %w", err)
	}
	s.favorites = favorites
	s.loaded = true
	return nil
}

// Search runs an ingredient search. An empty query yields a random sample
// instead. Catalog unavailability never fails a search; it degrades to an
// empty result set.
func (s *Session) Search(ctx context.Context, raw string) ([]recipedb.Recipe, error) {
	query := ingredient.ParseQuery(raw)
	if query.IsEmpty() {
		recipes, err := s.catalog.RandomSample(ctx, s.randomCount)
		if err != nil {
			slog.ErrorContext(ctx, "session: random sample failed", "error", err)
			return nil, nil
		}
		return recipes, nil
	}

	stubs, err := s.catalog.FilterByIngredient(ctx, query.Primary)
	if err != nil {
		slog.ErrorContext(ctx, "session: ingredient filter failed", "ingredient", query.Primary, "error", err)
		return nil, nil
	}

	// Fan out detail lookups; a single candidate's failure only drops that
	// candidate from the results.
	details := make([]*recipedb.Recipe, len(stubs))
	var grp errgroup.Group
	for i, stub := range stubs {
		grp.Go(func() error {
			detail, err := s.catalog.LookupDetail(ctx, stub.ID)
			if err != nil {
				if !errors.Is(err, mealdb.ErrNotFound) {
					slog.WarnContext(ctx, "session: recipe detail lookup failed", "recipeId", stub.ID, "error", err)
				}
				return nil
			}
			details[i] = detail
			return nil
		})
	}
	_ = grp.Wait()

	var recipes []recipedb.Recipe
	for _, detail := range details {
		if detail == nil {
			continue
		}
		if ingredient.Matches(*detail, query.Secondary) {
			recipes = append(recipes, *detail)
		}
	}
	return recipes, nil
}

// SearchByKeyword runs a free-text name search against the catalog. The
// failure policy matches Search: catalog unavailability degrades to an
// empty result set. An empty keyword yields a random sample, same as an
// empty ingredient query.
func (s *Session) SearchByKeyword(ctx context.Context, keyword string) ([]recipedb.Recipe, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.Search(ctx, "")
	}

	recipes, err := s.catalog.SearchByName(ctx, keyword)
	if err != nil {
		slog.ErrorContext(ctx, "session: keyword search failed", "keyword", keyword, "error", err)
		return nil, nil
	}
	return recipes, nil
}

// Favorites returns a copy of the current favorites view.
func (s *Session) Favorites() []recipedb.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

// IsFavorite reports whether the recipe is in the favorites view.
func (s *Session) IsFavorite(recipeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfLocked(recipeID) >= 0
}

// Toggle flips the favorite state of the recipe in two phases: the view is
// updated tentatively, then the remote write is issued. On remote failure
// the view rolls back to its prior state and the error is returned for the
// caller to surface as retryable. A second toggle for the same recipe while
// one is outstanding returns ErrToggleInFlight without issuing anything.
//
// The returned bool is the favorite state after the call, which on failure
// is the state before the toggle.
func (s *Session) Toggle(ctx context.Context, recipe recipedb.Recipe) (bool, error) {
	s.mu.Lock()
	if _, busy := s.pending[recipe.ID]; busy {
		favorited := s.indexOfLocked(recipe.ID) >= 0
		s.mu.Unlock()
		return favorited, ErrToggleInFlight
	}
	s.pending[recipe.ID] = struct{}{}

	idx := s.indexOfLocked(recipe.ID)
	removing := idx >= 0
	var prior recipedb.Favorite
	if removing {
		prior = s.favorites[idx]
		s.favorites = slices.Delete(s.favorites, idx, idx+1)
	} else {
		s.favorites = append(s.favorites, recipedb.Favorite{
			UserID:   s.userID,
			RecipeID: recipe.ID,
			Recipe:   recipe,
		})
	}
	s.mu.Unlock()

	var added recipedb.Favorite
	var err error
	if removing {
		err = s.store.Remove(ctx, s.userID, recipe.ID)
	} else {
		added, err = s.store.Add(ctx, s.userID, recipe)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, recipe.ID)

	if err != nil {
		if removing {
			s.favorites = append(s.favorites, prior)
		} else if i := s.indexOfLocked(recipe.ID); i >= 0 {
			s.favorites = slices.Delete(s.favorites, i, i+1)
		}
		return removing, fmt.Errorf("session: toggling favorite %s: %w", recipe.ID, err)
	}

	if !removing {
		// Record the store-assigned ID on the tentative entry so a later
		// remove can target it.
		if i := s.indexOfLocked(recipe.ID); i >= 0 {
			s.favorites[i] = added
		}
	}
	return !removing, nil
}

func (s *Session) indexOfLocked(recipeID string) int {
	return slices.IndexFunc(s.favorites, func(f recipedb.Favorite) bool {
		return f.RecipeID == recipeID
	})
}
