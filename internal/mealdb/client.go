// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package mealdb is a client for the TheMealDB recipe catalog API.
package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/mealsearch/internal/recipedb"
)

var (
	// ErrUnavailable indicates the catalog could not be reached or returned
	// a malformed response. Searches treat this as an empty result set.
	ErrUnavailable = errors.New("mealdb: catalog unavailable")

	// ErrNotFound indicates the catalog has no recipe for the requested ID.
	// This is a valid outcome, not a failure.
	ErrNotFound = errors.New("mealdb: recipe not found")
)

// RecipeStub is the summary form returned by the ingredient filter
// endpoint. Full details require a separate lookup per recipe.
type RecipeStub struct {
	// ID is the catalog's identifier for the recipe.
	ID string `json:"id"`

	// Name is the display title of the recipe.
	Name string `json:"name"`

	// ThumbnailURL is the URL of the recipe's thumbnail image.
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Client calls the TheMealDB HTTP API. All operations are idempotent reads
// and safe to issue concurrently.
type Client struct {
	httpClient *http.Client
	baseURL    string

	retryInterval time.Duration
	maxTries      uint
}

// NewClient creates a client for the catalog API rooted at baseURL,
// e.g. https://www.themealdb.com/api/json/v1/1.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:       baseURL,
		retryInterval: 500 * time.Millisecond,
		maxTries:      3,
	}
}

// FilterByIngredient returns stubs of every recipe containing the
// ingredient. An unknown ingredient yields an empty slice, not an error.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]RecipeStub, error) {
	meals, err := c.getMeals(ctx, "/filter.php", url.Values{"i": {ingredient}})
	if err != nil {
		return nil, err
	}

	stubs := make([]RecipeStub, len(meals))
	for i, meal := range meals {
		stubs[i] = RecipeStub{
			ID:           strField(meal, "idMeal"),
			Name:         strField(meal, "strMeal"),
			ThumbnailURL: strField(meal, "strMealThumb"),
		}
	}
	return stubs, nil
}

// SearchByName returns every recipe whose name matches the free-text
// keyword. Unlike the ingredient filter, the search endpoint returns full
// recipe records, so no per-result lookup is needed. An unmatched keyword
// yields an empty slice, not an error.
func (c *Client) SearchByName(ctx context.Context, keyword string) ([]recipedb.Recipe, error) {
	meals, err := c.getMeals(ctx, "/search.php", url.Values{"s": {keyword}})
	if err != nil {
		return nil, err
	}

	recipes := make([]recipedb.Recipe, len(meals))
	for i, meal := range meals {
		recipes[i] = recipeFromMeal(meal)
	}
	return recipes, nil
}

// LookupDetail returns the full recipe for the ID, or ErrNotFound if the
// catalog has no matching record.
func (c *Client) LookupDetail(ctx context.Context, id string) (*recipedb.Recipe, error) {
	meals, err := c.getMeals(ctx, "/lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("mealdb: looking up recipe %s: %w", id, ErrNotFound)
	}

	recipe := recipeFromMeal(meals[0])
	return &recipe, nil
}

// Random returns one random recipe from the catalog.
func (c *Client) Random(ctx context.Context) (*recipedb.Recipe, error) {
	meals, err := c.getMeals(ctx, "/random.php", nil)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("mealdb: empty random response: %w", ErrUnavailable)
	}

	recipe := recipeFromMeal(meals[0])
	return &recipe, nil
}

// RandomSample returns up to count random recipes, deduplicated by ID.
// The catalog has no batch form, so count calls are issued concurrently.
// Individual call failures shrink the sample instead of failing it.
func (c *Client) RandomSample(ctx context.Context, count int) ([]recipedb.Recipe, error) {
	results := make([]*recipedb.Recipe, count)
	var grp errgroup.Group
	for i := range count {
		grp.Go(func() error {
			recipe, err := c.Random(ctx)
			if err != nil {
				slog.WarnContext(ctx, "mealdb: fetching random recipe", "error", err)
				return nil
			}
			results[i] = recipe
			return nil
		})
	}
	_ = grp.Wait()

	seen := make(map[string]struct{}, count)
	recipes := make([]recipedb.Recipe, 0, count)
	for _, recipe := range results {
		if recipe == nil {
			continue
		}
		if _, ok := seen[recipe.ID]; ok {
			continue
		}
		seen[recipe.ID] = struct{}{}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// getMeals fetches an endpoint and returns the meals array of the response
// envelope. Transient failures are retried with exponential backoff before
// reporting ErrUnavailable.
func (c *Client) getMeals(ctx context.Context, path string, query url.Values) ([]map[string]any, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	op := func() ([]map[string]any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("mealdb: catalog returned status %d", resp.StatusCode)
			if resp.StatusCode >= http.StatusInternalServerError {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		var env struct {
			Meals []map[string]any `json:"meals"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return nil, err
		}
		return env.Meals, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	meals, err := backoff.Retry(ctx, op, backoff.WithBackOff(bo), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		return nil, fmt.Errorf("mealdb: calling catalog %s: %w: %w", path, ErrUnavailable, err)
	}
	return meals, nil
}
