package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/config"
	"github.com/crowdhq/crowd-client-go/internal/location"
	"github.com/crowdhq/crowd-client-go/internal/storage"
	"github.com/crowdhq/crowd-client-go/internal/stores"
	"github.com/crowdhq/crowd-client-go/internal/utils"
)

// app wires the stores together the way the mobile shell does at startup:
// storage first, then the API client reading session state from it, then the
// stores on top.
type app struct {
	cfg        *config.Config
	session    *stores.Session
	properties *stores.PropertyStore
	bookings   *stores.BookingStore
	location   *location.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := storage.New(cfg.StorageDir)
	if err != nil {
		return nil, err
	}

	client, err := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, st)
	if err != nil {
		return nil, err
	}

	loc := location.NewService(positionProvider(), geocoder(cfg), st)

	return &app{
		cfg:        cfg,
		session:    stores.NewSession(client, st),
		properties: stores.NewPropertyStore(client, loc),
		bookings:   stores.NewBookingStore(client),
		location:   loc,
	}, nil
}

// positionProvider builds the CLI's stand-in for device GPS: fixed
// coordinates from CROWD_LAT / CROWD_LNG, or a denied provider when unset.
func positionProvider() location.Provider {
	latStr, lngStr := os.Getenv("CROWD_LAT"), os.Getenv("CROWD_LNG")
	if latStr == "" || lngStr == "" {
		return location.DeniedProvider{}
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		utils.Logger.Warn("Invalid CROWD_LAT/CROWD_LNG, location disabled")
		return location.DeniedProvider{}
	}
	return location.StaticProvider{Lat: lat, Lng: lng}
}

func geocoder(cfg *config.Config) location.Geocoder {
	if cfg.GoogleMapsAPIKey == "" {
		return nil
	}
	g, err := location.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	if err != nil {
		utils.Logger.WithError(err).Warn("Geocoder unavailable")
		return nil
	}
	return g
}

// printJSON renders command output for both humans and scripts.
func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
