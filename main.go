// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curioswitch/mealsearch/internal/auth"
	"github.com/curioswitch/mealsearch/internal/config"
	"github.com/curioswitch/mealsearch/internal/handler/endsession"
	"github.com/curioswitch/mealsearch/internal/handler/getrecipe"
	"github.com/curioswitch/mealsearch/internal/handler/listfavorites"
	"github.com/curioswitch/mealsearch/internal/handler/searchrecipes"
	"github.com/curioswitch/mealsearch/internal/handler/togglefavorite"
	"github.com/curioswitch/mealsearch/internal/mealdb"
	"github.com/curioswitch/mealsearch/internal/recipedb"
	"github.com/curioswitch/mealsearch/internal/session"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	catalog := mealdb.NewClient(conf.Catalog.BaseURL)
	favorites := recipedb.NewFavorites(firestore)

	identityChanges := make(chan session.Change, 16)
	sessions := session.NewManager(catalog, favorites, conf.Catalog.RandomCount, identityChanges)
	go sessions.Run(ctx)

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/internal/")
	}))
	mux.Use(auth.AnnounceSignIn(auth.UserID, sessions.Active, identityChanges))

	mux.Get("/api/recipes/search", searchrecipes.NewHandler(sessions, auth.UserID).SearchRecipes)
	mux.Get("/api/recipes/{recipeID}", getrecipe.NewHandler(catalog).GetRecipe)
	mux.Get("/api/favorites", listfavorites.NewHandler(sessions, auth.UserID).ListFavorites)
	mux.Post("/api/favorites/toggle", togglefavorite.NewHandler(sessions, auth.UserID).ToggleFavorite)
	mux.Post("/api/session/end", endsession.NewHandler(identityChanges, auth.UserID).EndSession)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
