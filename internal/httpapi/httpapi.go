// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi holds the JSON request/response plumbing shared by the
// API handlers.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/curioswitch/mealsearch/internal/mealdb"
	"github.com/curioswitch/mealsearch/internal/recipedb"
	"github.com/curioswitch/mealsearch/internal/session"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "httpapi: encoding response", "error", err)
	}
}

// WriteError writes err as a JSON error body with a status derived from
// its sentinel. Unrecognized errors become 500s with a generic message so
// internals do not leak.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, "httpapi: internal error", "error", err)
		WriteJSON(ctx, w, status, errorBody{Error: "internal error"})
		return
	}
	WriteJSON(ctx, w, status, errorBody{Error: err.Error()})
}

// ReadJSON decodes the request body into v.
func ReadJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mealdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrToggleInFlight):
		return http.StatusConflict
	case errors.Is(err, recipedb.ErrUnavailable), errors.Is(err, mealdb.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
