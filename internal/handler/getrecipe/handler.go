// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/mealsearch/internal/httpapi"
	"github.com/curioswitch/mealsearch/internal/recipedb"
)

// Catalog looks up full recipe details.
type Catalog interface {
	LookupDetail(ctx context.Context, id string) (*recipedb.Recipe, error)
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

type Handler struct {
	catalog Catalog
}

type Response struct {
	Recipe recipedb.Recipe `json:"recipe"`
}

// GetRecipe returns the full detail of one recipe for the detail view.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipe, err := h.catalog.LookupDetail(ctx, chi.URLParam(r, "recipeID"))
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}
	httpapi.WriteJSON(ctx, w, http.StatusOK, Response{Recipe: *recipe})
}
