// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package testutil provides in-memory fakes of the catalog and favorites
// store for tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/curioswitch/mealsearch/internal/mealdb"
	"github.com/curioswitch/mealsearch/internal/recipedb"
)

// FakeCatalog serves canned catalog responses.
type FakeCatalog struct {
	Stubs   map[string][]mealdb.RecipeStub
	Named   map[string][]recipedb.Recipe
	Details map[string]recipedb.Recipe
	Random  []recipedb.Recipe

	// FilterErr, when set, fails FilterByIngredient. SearchErr does the
	// same for SearchByName.
	FilterErr error
	SearchErr error
}

func (c *FakeCatalog) FilterByIngredient(_ context.Context, ingredient string) ([]mealdb.RecipeStub, error) {
	if c.FilterErr != nil {
		return nil, c.FilterErr
	}
	return c.Stubs[ingredient], nil
}

func (c *FakeCatalog) SearchByName(_ context.Context, keyword string) ([]recipedb.Recipe, error) {
	if c.SearchErr != nil {
		return nil, c.SearchErr
	}
	return c.Named[keyword], nil
}

func (c *FakeCatalog) LookupDetail(_ context.Context, id string) (*recipedb.Recipe, error) {
	detail, ok := c.Details[id]
	if !ok {
		return nil, fmt.Errorf("looking up recipe %s: %w", id, mealdb.ErrNotFound)
	}
	return &detail, nil
}

func (c *FakeCatalog) RandomSample(_ context.Context, count int) ([]recipedb.Recipe, error) {
	if count > len(c.Random) {
		count = len(c.Random)
	}
	return c.Random[:count], nil
}

// ChickenCatalog is a catalog fixture where "chicken" matches two recipes,
// only one of which also contains garlic. The keyword "stew" matches the
// first by name.
func ChickenCatalog() *FakeCatalog {
	return &FakeCatalog{
		Stubs: map[string][]mealdb.RecipeStub{
			"chicken": {
				{ID: "52940", Name: "Brown Stew Chicken"},
				{ID: "52941", Name: "Chicken Congee"},
			},
		},
		Named: map[string][]recipedb.Recipe{
			"stew": {
				{ID: "52940", Name: "Brown Stew Chicken", Ingredients: []recipedb.Ingredient{
					{Name: "Chicken"}, {Name: "Garlic"}, {Name: "Salt"},
				}},
			},
		},
		Details: map[string]recipedb.Recipe{
			"52940": {ID: "52940", Name: "Brown Stew Chicken", Ingredients: []recipedb.Ingredient{
				{Name: "Chicken"}, {Name: "Garlic"}, {Name: "Salt"},
			}},
			"52941": {ID: "52941", Name: "Chicken Congee", Ingredients: []recipedb.Ingredient{
				{Name: "Chicken"}, {Name: "Onion"},
			}},
		},
		Random: []recipedb.Recipe{
			{ID: "r1", Name: "Random One"},
			{ID: "r2", Name: "Random Two"},
			{ID: "r3", Name: "Random Three"},
		},
	}
}

// FakeStore is an in-memory favorites store.
type FakeStore struct {
	mu      sync.Mutex
	records map[string][]recipedb.Favorite
	nextID  int

	// AddErr and RemoveErr, when set, fail the respective call.
	AddErr    error
	RemoveErr error

	// Removed records the (userID, recipeID) pairs passed to Remove.
	Removed [][2]string

	// BlockAdd, when set, is received from before Add returns so tests can
	// hold a toggle's remote call open. AddStarted signals that Add was
	// entered.
	BlockAdd   chan struct{}
	AddStarted chan struct{}
}

func NewFakeStore() *FakeStore {
	return &FakeStore{records: map[string][]recipedb.Favorite{}}
}

// Seed adds a favorite record directly, bypassing Add's knobs.
func (s *FakeStore) Seed(fav recipedb.Favorite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[fav.UserID] = append(s.records[fav.UserID], fav)
}

func (s *FakeStore) LoadAll(_ context.Context, userID string) ([]recipedb.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipedb.Favorite(nil), s.records[userID]...), nil
}

func (s *FakeStore) Add(_ context.Context, userID string, recipe recipedb.Recipe) (recipedb.Favorite, error) {
	if s.BlockAdd != nil {
		if s.AddStarted != nil {
			s.AddStarted <- struct{}{}
		}
		<-s.BlockAdd
	}
	if s.AddErr != nil {
		return recipedb.Favorite{}, s.AddErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	fav := recipedb.Favorite{
		StoreID:  fmt.Sprintf("doc-%d", s.nextID),
		UserID:   userID,
		RecipeID: recipe.ID,
		Recipe:   recipe,
	}
	s.records[userID] = append(s.records[userID], fav)
	return fav, nil
}

func (s *FakeStore) Remove(_ context.Context, userID string, recipeID string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removed = append(s.Removed, [2]string{userID, recipeID})
	var kept []recipedb.Favorite
	for _, fav := range s.records[userID] {
		if fav.RecipeID != recipeID {
			kept = append(kept, fav)
		}
	}
	s.records[userID] = kept
	return nil
}