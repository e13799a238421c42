// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Catalog struct {
	// BaseURL is the base URL of the recipe catalog API, e.g. https://www.themealdb.com/api/json/v1/1.
	BaseURL string `koanf:"baseurl"`

	// RandomCount is the number of recipes fetched for a random sample.
	RandomCount int `koanf:"randomcount"`
}

type Config struct {
	config.Common

	// Catalog is the configuration for the recipe catalog.
	Catalog Catalog `koanf:"catalog"`
}
