// Package location wraps a device position provider behind a 30-minute
// cache and adds the geo helpers the stores need: great-circle distance,
// travel-time estimates, and geocoding.
package location

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/umahmood/haversine"

	"github.com/crowdhq/crowd-client-go/internal/storage"
	"github.com/crowdhq/crowd-client-go/internal/utils"
)

const (
	// StorageKey is the namespaced durable-storage key for the last known fix.
	StorageKey = "user_location_cache"

	// CacheExpiry bounds how long a fix is reused. Expiry is checked when the
	// cache is read; there is no background eviction.
	CacheExpiry = 30 * time.Minute

	// avgCitySpeedKmh is the assumed average driving speed in Nigerian cities.
	avgCitySpeedKmh = 40
)

// ErrPermissionDenied is returned when the device location permission is
// missing or refused.
var ErrPermissionDenied = errors.New("location permission not granted")

// Coordinates is a cached device fix. Timestamp is unix milliseconds and
// drives the read-time expiry check.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

// Fix is a raw position report from the device provider.
type Fix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Address is a reverse-geocoding result.
type Address struct {
	Name           string
	Street         string
	District       string
	City           string
	Region         string
	PostalCode     string
	Country        string
	ISOCountryCode string
	Timezone       string
}

// Provider is the permission-gated device location API.
type Provider interface {
	HasPermission(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (Fix, error)
}

// Geocoder converts between coordinates and addresses.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error)
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

type Service struct {
	provider Provider
	geocoder Geocoder
	storage  *storage.Store
	mem      *cache.Cache
}

// NewService builds a location service on top of the given provider.
// geocoder may be nil when no geocoding backend is configured.
func NewService(provider Provider, geocoder Geocoder, st *storage.Store) *Service {
	// No cleanup interval: expired entries are simply misses on read.
	return &Service{
		provider: provider,
		geocoder: geocoder,
		storage:  st,
		mem:      cache.New(CacheExpiry, 0),
	}
}

// RequestPermission asks the provider for foreground location access.
func (s *Service) RequestPermission(ctx context.Context) (bool, error) {
	return s.provider.RequestPermission(ctx)
}

// CurrentLocation returns the device position, reusing a cached fix younger
// than CacheExpiry unless forceRefresh is set.
func (s *Service) CurrentLocation(ctx context.Context, forceRefresh bool) (Coordinates, error) {
	granted, err := s.provider.HasPermission(ctx)
	if err != nil {
		return Coordinates{}, err
	}
	if !granted {
		return Coordinates{}, ErrPermissionDenied
	}

	if !forceRefresh {
		if coords, ok := s.cachedLocation(); ok {
			return coords, nil
		}
	}

	fix, err := s.provider.CurrentPosition(ctx)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error getting current location")
		return Coordinates{}, err
	}

	coords := Coordinates{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timestamp: time.Now().UnixMilli(),
	}
	s.cacheLocation(coords)
	return coords, nil
}

func (s *Service) cacheLocation(coords Coordinates) {
	s.mem.Set(StorageKey, coords, cache.DefaultExpiration)
	if err := s.storage.Set(StorageKey, coords); err != nil {
		utils.Logger.WithError(err).Warn("Error caching location")
	}
}

// cachedLocation checks memory first, then the persisted fix. Both apply the
// same read-time age check.
func (s *Service) cachedLocation() (Coordinates, bool) {
	if v, ok := s.mem.Get(StorageKey); ok {
		return v.(Coordinates), true
	}

	var coords Coordinates
	ok, err := s.storage.Get(StorageKey, &coords)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error reading cached location")
		return Coordinates{}, false
	}
	if !ok || coords.Timestamp == 0 {
		return Coordinates{}, false
	}
	age := time.Since(time.UnixMilli(coords.Timestamp))
	if age >= CacheExpiry {
		return Coordinates{}, false
	}
	s.mem.Set(StorageKey, coords, CacheExpiry-age)
	return coords, true
}

// AddressFromCoordinates reverse-geocodes a point. The timezone is filled
// from the embedded zone lookup when the geocoder leaves it blank.
func (s *Service) AddressFromCoordinates(ctx context.Context, lat, lng float64) (*Address, error) {
	if s.geocoder == nil {
		return nil, errors.New("no geocoder configured")
	}
	addr, err := s.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error getting address from coordinates")
		return nil, err
	}
	if addr != nil && addr.Timezone == "" {
		addr.Timezone = TimezoneFor(lat, lng)
	}
	return addr, nil
}

// CoordinatesFromAddress forward-geocodes a free-text address.
func (s *Service) CoordinatesFromAddress(ctx context.Context, address string) (*Coordinates, error) {
	if s.geocoder == nil {
		return nil, errors.New("no geocoder configured")
	}
	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error getting coordinates from address")
		return nil, err
	}
	return coords, nil
}

// DistanceKm is the great-circle distance between two points in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}

// TravelTimeMinutes estimates driving time for a distance at the average
// city speed.
func TravelTimeMinutes(distanceKm float64) float64 {
	return distanceKm / avgCitySpeedKmh * 60
}
